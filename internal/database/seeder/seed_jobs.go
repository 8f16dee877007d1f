package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// JobsSeeder posts a handful of jobs for the demo employer. It depends on
// AccountsSeeder having run.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "jobs", "id", "employer_id", "title", "description", "skills", "salary_min", "salary_max", "location", "status"); err != nil {
		return err
	}

	var employerID string
	row := db.QueryRow(ctx, `SELECT id::text FROM users WHERE email = $1 AND role = 'employer'`, "employer@example.com")
	if err := row.Scan(&employerID); err != nil {
		return fmt.Errorf("demo employer: %w", err)
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs WHERE employer_id = $1::uuid`, employerID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	items := []struct {
		Title       string
		Description string
		Skills      []string
		SalaryMin   int64
		SalaryMax   int64
		Location    string
		Status      string
	}{
		{"Backend Engineer (Go)", "Own our matching API and Postgres schema.", []string{"Go", "PostgreSQL", "Redis"}, 90000, 120000, "Remote", "active"},
		{"Frontend Engineer", "Build the job board SPA.", []string{"React", "Redux", "TypeScript"}, 80000, 110000, "Jakarta", "active"},
		{"Platform Engineer", "Run our Kubernetes clusters.", []string{"Docker", "Kubernetes", "Terraform"}, 95000, 130000, "Remote", "active"},
		{"Data Analyst", "Reporting on hiring funnels.", []string{"SQL", "Python"}, 60000, 80000, "Bandung", "closed"},
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (id, employer_id, title, description, skills, salary_min, salary_max, location, status)
				 VALUES (gen_random_uuid(), $1::uuid, $2, $3, $4, $5, $6, $7, $8)`,
				employerID, it.Title, it.Description, it.Skills, it.SalaryMin, it.SalaryMax, it.Location, it.Status,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
