package catalog

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/MakerMama/afterschool-finder/core/model"
)

// PremiumCost is the price from which a program counts as premium.
const PremiumCost = 1000

// UniqueCategories returns every interest category in lexical order.
func UniqueCategories(programs []model.Program) []string {
	seen := model.TagSet{}
	for _, p := range programs {
		for t := range p.Categories {
			seen[t] = struct{}{}
		}
	}
	return seen.Sorted()
}

// CostStats describes the programs that list a cost.
type CostStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// Premium counts programs costing PremiumCost or more.
	Premium int `json:"premium"`
}

// Summary is an overview of a catalog.
type Summary struct {
	Programs     int                       `json:"programs"`
	Providers    int                       `json:"providers"`
	Categories   []string                  `json:"categories"`
	ByDay        map[model.Weekday]int     `json:"by_day"`
	ByType       map[model.ProgramType]int `json:"by_type"`
	MinAge       float64                   `json:"min_age"`
	MaxAge       float64                   `json:"max_age"`
	WithAddress  int                       `json:"with_address"`
	Cost         *CostStats                `json:"cost,omitempty"`
	CostPerClass *CostStats                `json:"cost_per_class,omitempty"`
}

// Summarize computes catalog totals and price statistics.
func Summarize(programs []model.Program) Summary {
	s := Summary{
		Programs:   len(programs),
		Categories: UniqueCategories(programs),
		ByDay:      map[model.Weekday]int{},
		ByType:     map[model.ProgramType]int{},
	}
	providers := map[string]struct{}{}
	var costs, perClass []float64
	for i, p := range programs {
		providers[p.ProviderName] = struct{}{}
		s.ByDay[p.Day]++
		s.ByType[p.ProgramType]++
		if i == 0 || p.MinAge < s.MinAge {
			s.MinAge = p.MinAge
		}
		if i == 0 || p.MaxAge > s.MaxAge {
			s.MaxAge = p.MaxAge
		}
		if p.Address != "" {
			s.WithAddress++
		}
		if p.Cost != nil {
			costs = append(costs, *p.Cost)
		}
		if p.CostPerClass != nil {
			perClass = append(perClass, *p.CostPerClass)
		}
	}
	s.Providers = len(providers)
	s.Cost = costStats(costs)
	s.CostPerClass = costStats(perClass)
	return s
}

func costStats(v []float64) *CostStats {
	if len(v) == 0 {
		return nil
	}
	sort.Float64s(v)
	cs := &CostStats{
		Count:  len(v),
		Min:    floats.Min(v),
		Max:    floats.Max(v),
		Mean:   stat.Mean(v, nil),
		Median: stat.Quantile(0.5, stat.Empirical, v, nil),
	}
	for _, c := range v {
		if c >= PremiumCost {
			cs.Premium++
		}
	}
	return cs
}
