package geocode

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MakerMama/afterschool-finder/core/model"
)

// Static answers lookups from a fixed address table. It is used offline and
// in demos where no network geocoder is available.
type Static struct {
	places map[string]model.Coordinate
}

type staticPlace struct {
	Address string  `yaml:"address"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
}

type staticFile struct {
	Places []staticPlace `yaml:"places"`
}

// NewStatic builds a provider from an in-memory table.
func NewStatic(places map[string]model.Coordinate) *Static {
	cp := make(map[string]model.Coordinate, len(places))
	for k, v := range places {
		cp[k] = v
	}
	return &Static{places: cp}
}

// LoadStatic reads a YAML table of the form
//
//	places:
//	  - address: "1 Main St, Springfield"
//	    lat: 39.78
//	    lon: -89.65
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static places: %w", err)
	}
	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse static places: %w", err)
	}
	places := make(map[string]model.Coordinate, len(f.Places))
	for i, p := range f.Places {
		if p.Address == "" {
			return nil, fmt.Errorf("static place %d: address is required", i)
		}
		places[p.Address] = model.Coordinate{Latitude: p.Lat, Longitude: p.Lon}
	}
	return &Static{places: places}, nil
}

// Lookup returns the table entry for address.
func (s *Static) Lookup(_ context.Context, address string) (model.Coordinate, bool, error) {
	c, ok := s.places[address]
	return c, ok, nil
}
