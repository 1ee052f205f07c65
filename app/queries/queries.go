// Package queries holds the fixed research query sets. Deployments can
// override them with a YAML file; otherwise the compiled-in defaults for
// the El Paso / Fort Bliss market are used.
package queries

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edguillen/research-digest/app/research"
)

type Sets struct {
	MarketIntel []string `yaml:"market_intel"`
	PainPoints  []string `yaml:"pain_points"`
	Evening     []string `yaml:"evening_urgent"`
}

// Defaults mirrors the query lists the digest was designed around.
func Defaults() Sets {
	return Sets{
		MarketIntel: []string{
			"El Paso Texas real estate market update 2026",
			"Fort Bliss BAH rates 2026",
			"El Paso new construction homes Horizon City Eastlake",
			"first time home buyer El Paso down payment assistance",
			"First Time Home buyers incoming El Paso region 2026",
		},
		PainPoints: []string{
			"site:reddit.com moving to El Paso",
			"site:reddit.com Fort Bliss housing advice",
			"site:reddit.com El Paso neighborhoods safe",
			"site:reddit.com PCS Fort Bliss buy or rent",
		},
		Evening: []string{
			"El Paso real estate market breaking news today",
			"Fort Bliss announcement housing today",
		},
	}
}

// Load reads the query sets from path, falling back to the defaults when
// the file does not exist.
func Load(path string) (Sets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No queries file found, using default query sets", "path", path)
			return Defaults(), nil
		}
		return Sets{}, fmt.Errorf("failed to read queries file: %w", err)
	}

	var sets Sets
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return Sets{}, fmt.Errorf("failed to parse queries file %s: %w", path, err)
	}

	if err := sets.validate(); err != nil {
		return Sets{}, fmt.Errorf("invalid queries file %s: %w", path, err)
	}

	return sets, nil
}

func (s Sets) validate() error {
	if len(s.MarketIntel) == 0 && len(s.PainPoints) == 0 {
		return fmt.Errorf("no morning queries configured")
	}
	if len(s.Evening) == 0 {
		return fmt.Errorf("no evening queries configured")
	}

	for _, group := range [][]string{s.MarketIntel, s.PainPoints, s.Evening} {
		for _, q := range group {
			if q == "" {
				return fmt.Errorf("empty query text")
			}
		}
	}

	return nil
}

// Morning returns the combined morning query list in category order.
func (s Sets) Morning() []research.Query {
	queries := make([]research.Query, 0, len(s.MarketIntel)+len(s.PainPoints))
	for _, q := range s.MarketIntel {
		queries = append(queries, research.Query{
			Query:    q,
			Project:  research.ProjectName,
			Category: research.CategoryMarketIntel,
		})
	}
	for _, q := range s.PainPoints {
		queries = append(queries, research.Query{
			Query:    q,
			Project:  research.ProjectName,
			Category: research.CategoryPainPoints,
		})
	}
	return queries
}

// EveningQueries returns the urgent-news query list.
func (s Sets) EveningQueries() []research.Query {
	queries := make([]research.Query, 0, len(s.Evening))
	for _, q := range s.Evening {
		queries = append(queries, research.Query{
			Query:    q,
			Project:  research.ProjectName,
			Category: research.CategoryUrgentNews,
		})
	}
	return queries
}
