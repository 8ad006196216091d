package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/motech/mrs/pkg/repository"
)

// Seeder populates one domain's data inside a shared transaction.
type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, tx *sql.Tx) (int, error)
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns the registered seeders sorted by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// runSeeders executes the named seeders in one transaction. If any fails,
// nothing is written.
func runSeeders(ctx context.Context, db *sql.DB, names []string) (map[string]int, error) {
	selected := make([]Seeder, 0, len(names))
	for _, name := range names {
		s, ok := getSeeder(name)
		if !ok {
			return nil, fmt.Errorf("seeder not found: %s", name)
		}
		selected = append(selected, s)
	}

	return repository.WithTx(ctx, db, func(tx *sql.Tx) (map[string]int, error) {
		counts := make(map[string]int, len(selected))
		for _, s := range selected {
			n, err := s.Seed(ctx, tx)
			if err != nil {
				return nil, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
			counts[s.Name()] = n
		}
		return counts, nil
	})
}
