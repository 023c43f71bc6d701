package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCityRank is used for empty, unknown or unrecognized city names.
const DefaultCityRank = 50.0

// locationSwing is the number of score points a rank of 0 or 100 moves the
// base index away from neutral.
const locationSwing = 20.0

// defaultCityRanks holds the built-in city safety ranks (100 = safest).
var defaultCityRanks = map[string]float64{
	"New York":      65,
	"Los Angeles":   60,
	"Chicago":       55,
	"Houston":       62,
	"Phoenix":       68,
	"Philadelphia":  58,
	"San Antonio":   70,
	"San Diego":     75,
	"Dallas":        63,
	"San Jose":      78,
	"Austin":        72,
	"Jacksonville":  61,
	"Fort Worth":    64,
	"Columbus":      69,
	"Charlotte":     73,
	"San Francisco": 71,
	"Indianapolis":  66,
	"Seattle":       77,
	"Denver":        76,
	"Boston":        67,
}

// CityRanks is an immutable city name to safety rank table. Lookups are
// exact and case-sensitive.
type CityRanks struct {
	ranks map[string]float64
}

// DefaultCityRanks returns the built-in table.
func DefaultCityRanks() CityRanks {
	return NewCityRanks(defaultCityRanks)
}

// NewCityRanks copies ranks into a new table.
func NewCityRanks(ranks map[string]float64) CityRanks {
	cp := make(map[string]float64, len(ranks))
	for city, rank := range ranks {
		cp[city] = rank
	}
	return CityRanks{ranks: cp}
}

// Rank returns the safety rank for city, or DefaultCityRank when the city is
// not in the table.
func (c CityRanks) Rank(city string) float64 {
	if city == "" {
		return DefaultCityRank
	}
	if rank, ok := c.ranks[city]; ok {
		return rank
	}
	return DefaultCityRank
}

// Len returns the number of cities in the table.
func (c CityRanks) Len() int {
	return len(c.ranks)
}

// Adjustment returns the additive location adjustment for city:
// (rank/100 - 0.5) * 20, i.e. within ±10 points for ranks in [0,100].
func (c CityRanks) Adjustment(city string) float64 {
	factor := c.Rank(city) / 100
	return (factor - 0.5) * locationSwing
}

// cityRanksFile is the YAML layout of a rank override file:
//
//	cities:
//	  San Jose: 78
//	  Reno: 59
type cityRanksFile struct {
	Cities map[string]float64 `yaml:"cities"`
}

// LoadCityRanks reads a YAML override file and merges it over the built-in
// table. Ranks must lie in [0,100].
func LoadCityRanks(path string) (CityRanks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CityRanks{}, fmt.Errorf("city ranks: read %q: %w", path, err)
	}

	var file cityRanksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return CityRanks{}, fmt.Errorf("city ranks: parse yaml: %w", err)
	}

	merged := make(map[string]float64, len(defaultCityRanks)+len(file.Cities))
	for city, rank := range defaultCityRanks {
		merged[city] = rank
	}
	for city, rank := range file.Cities {
		if !(rank >= 0 && rank <= 100) {
			return CityRanks{}, fmt.Errorf("city ranks: %q rank %g is out of range [0, 100]", city, rank)
		}
		merged[city] = rank
	}
	return CityRanks{ranks: merged}, nil
}
