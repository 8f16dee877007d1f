package repository

import (
	"context"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, role, name, skills, resume_url, profile_image_url, company_name, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, name, skills, resume_url, profile_image_url, company_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.Name, cleanSkills(u.Skills),
		u.ResumeURL, u.ProfileImageURL, u.CompanyName,
	)
	if postgres.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $2, password_hash = $3, name = $4, skills = $5,
		     resume_url = $6, profile_image_url = $7, company_name = $8, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Email, u.PasswordHash, u.Name, cleanSkills(u.Skills),
		u.ResumeURL, u.ProfileImageURL, u.CompanyName,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(s scanner) (user.User, error) {
	var (
		u    user.User
		role string
	)
	err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.Skills,
		&u.ResumeURL, &u.ProfileImageURL, &u.CompanyName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u, nil
}
