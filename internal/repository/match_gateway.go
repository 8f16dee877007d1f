package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

// PostgresMatchGateway reads the skill data the matching flows score.
type PostgresMatchGateway struct {
	db database.DB
}

func NewPostgresMatchGateway(db database.DB) *PostgresMatchGateway {
	return &PostgresMatchGateway{db: db}
}

func (g *PostgresMatchGateway) FetchCandidateSkills(ctx context.Context, candidateID uuid.UUID) ([]string, error) {
	var skills []string
	err := g.db.QueryRow(ctx, `SELECT skills FROM users WHERE id = $1`, candidateID).Scan(&skills)
	if err != nil {
		if noRows(err) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	if skills == nil {
		skills = []string{}
	}
	return skills, nil
}

func (g *PostgresMatchGateway) FetchOpenJobs(ctx context.Context) ([]job.Posting, error) {
	rows, err := g.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = 'active' AND deleted_at IS NULL
		 ORDER BY created_at DESC, id ASC`,
	)
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

func (g *PostgresMatchGateway) FetchCandidatesWithSkills(ctx context.Context, required []string) ([]user.User, error) {
	keys := lowerSkills(required)
	if len(keys) == 0 {
		return []user.User{}, nil
	}

	rows, err := g.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE role = 'jobseeker' AND normalized_skills(skills) && $1::text[]
		 ORDER BY created_at ASC, id ASC`,
		keys,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = ""
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
