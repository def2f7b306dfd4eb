package geo

import (
	"math"
	"testing"

	"github.com/MakerMama/afterschool-finder/core/model"
)

func TestHaversineMilesSamePoint(t *testing.T) {
	p := model.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	if d := HaversineMiles(p, p); d != 0 {
		t.Fatalf("expected 0 got %v", d)
	}
}

func TestHaversineMilesKnownDistance(t *testing.T) {
	nyc := model.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	la := model.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	d := HaversineMiles(nyc, la)
	if math.Abs(d-2446) > 5 {
		t.Fatalf("expected ~2446 miles got %.1f", d)
	}
	if back := HaversineMiles(la, nyc); math.Abs(back-d) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", d, back)
	}
}

func TestHaversineMilesOneDegreeLatitude(t *testing.T) {
	a := model.Coordinate{Latitude: 0, Longitude: 0}
	b := model.Coordinate{Latitude: 1, Longitude: 0}
	want := EarthRadiusMiles * math.Pi / 180
	if d := HaversineMiles(a, b); math.Abs(d-want) > 1e-6 {
		t.Fatalf("expected %v got %v", want, d)
	}
}

func TestHaversineMilesAntipodal(t *testing.T) {
	a := model.Coordinate{Latitude: 0, Longitude: 0}
	b := model.Coordinate{Latitude: 0, Longitude: 180}
	d := HaversineMiles(a, b)
	if math.IsNaN(d) || d < 0 {
		t.Fatalf("invalid distance %v", d)
	}
	if math.Abs(d-math.Pi*EarthRadiusMiles) > 1e-6 {
		t.Fatalf("expected half circumference got %v", d)
	}
}
