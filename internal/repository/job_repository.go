package repository

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

const jobColumns = `id, employer_id, title, description, skills, salary_min, salary_max, location, status, deleted_at, created_at, updated_at`

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 50
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, skills, salary_min, salary_max, location, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.EmployerID, p.Title, p.Description, cleanSkills(p.Skills),
		p.SalaryMin, p.SalaryMax, p.Location, string(p.Status),
	)
	return err
}

// GetByID does not return soft-deleted postings.
func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, p job.Posting) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, skills = $4, salary_min = $5, salary_max = $6,
		     location = $7, status = $8, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.Title, p.Description, cleanSkills(p.Skills),
		p.SalaryMin, p.SalaryMax, p.Location, string(p.Status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, string(status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f job.ListFilter) ([]job.Posting, error) {
	query, args := buildListActiveQuery(f)
	return r.list(ctx, query, args...)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Posting, error) {
	return r.list(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE employer_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC`,
		employerID,
	)
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func buildListActiveQuery(f job.ListFilter) (string, []any) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	if limit > maxJobListLimit {
		limit = maxJobListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"deleted_at IS NULL", "status = 'active'"}
	args := make([]any, 0, 5)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := next(containsPattern(q))
		where = append(where, fmt.Sprintf(`(title ILIKE %s ESCAPE '\' OR description ILIKE %s ESCAPE '\')`, p, p))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "location ILIKE "+next(containsPattern(loc))+` ESCAPE '\'`)
	}
	if skills := lowerSkills(f.Skills); len(skills) > 0 {
		where = append(where, "normalized_skills(skills) && "+next(skills)+"::text[]")
	}

	query := `SELECT ` + jobColumns + `
		 FROM jobs
		 WHERE ` + strings.Join(where, " AND ") + `
		 ORDER BY created_at DESC, id ASC
		 LIMIT ` + next(limit) + ` OFFSET ` + next(offset)
	return query, args
}

func scanJob(s scanner) (job.Posting, error) {
	var (
		p      job.Posting
		status string
	)
	err := s.Scan(
		&p.ID, &p.EmployerID, &p.Title, &p.Description, &p.Skills,
		&p.SalaryMin, &p.SalaryMax, &p.Location, &status, &p.DeletedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	p.Status = job.Status(status)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}
