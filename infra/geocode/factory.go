// Package geocode contains the geocoding provider adapters.
package geocode

import (
	"github.com/MakerMama/afterschool-finder/core/factory"
	coregeo "github.com/MakerMama/afterschool-finder/core/geocode"
)

var providerRegistry = factory.NewRegistry[coregeo.Provider]()

// RegisterProvider adds a provider factory identified by name.
func RegisterProvider(name string, f factory.Factory[coregeo.Provider]) error {
	return providerRegistry.Register(name, f)
}

// NewProvider creates a provider from configuration. An empty type selects
// Nominatim.
func NewProvider(cfg factory.ModuleConfig) (coregeo.Provider, error) {
	if cfg.Type == "" {
		cfg.Type = "nominatim"
	}
	return providerRegistry.Create(cfg)
}

func init() {
	_ = RegisterProvider("nominatim", func(conf map[string]any) (coregeo.Provider, error) {
		var c NominatimConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewNominatim(c), nil
	})
	_ = RegisterProvider("static", func(conf map[string]any) (coregeo.Provider, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return NewStatic(nil), nil
		}
		return LoadStatic(c.Path)
	})
}
