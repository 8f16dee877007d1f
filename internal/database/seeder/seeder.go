package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"

	"go.uber.org/zap"
)

// Seeder inserts demo data. Running a seeder twice must not duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults is the demo data set: accounts first, since postings belong to
// the demo employer.
func Defaults() []Seeder {
	return []Seeder{AccountsSeeder{}, JobsSeeder{}}
}

// Runner runs seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		started := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder finished", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(started)))
	}
	return nil
}

// requireColumns fails fast when the schema is older than the seeder
// expects, instead of failing halfway through an insert.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	var missing []string
	err := db.QueryRow(ctx,
		`SELECT COALESCE(array_agg(c ORDER BY c), '{}')
		 FROM unnest($2::text[]) AS c
		 WHERE c NOT IN (
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
		 )`,
		table, columns,
	).Scan(&missing)
	if err != nil {
		return fmt.Errorf("inspect %s columns: %w", table, err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s is missing %s", table, strings.Join(missing, ", "))
	}
	return nil
}
