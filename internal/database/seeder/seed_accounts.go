package seeder

import (
	"context"

	"jobboard/internal/database"

	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

type demoAccount struct {
	Email       string
	Role        string
	Name        string
	Skills      []string
	CompanyName *string
}

func demoAccounts() []demoAccount {
	acme := "Acme Labs"
	return []demoAccount{
		{Email: "employer@example.com", Role: "employer", Name: "Erin Employer", CompanyName: &acme},
		{Email: "seeker@example.com", Role: "jobseeker", Name: "Sam Seeker", Skills: []string{"Go", "PostgreSQL", "Docker"}},
		{Email: "frontend@example.com", Role: "jobseeker", Name: "Fran Frontend", Skills: []string{"React", "TypeScript", "Node.js"}},
	}
}

// AccountsSeeder creates one employer and two jobseekers, all with the
// same demo password. Existing emails are left alone.
type AccountsSeeder struct{}

func (AccountsSeeder) Name() string { return "accounts" }

func (AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "users", "id", "email", "password_hash", "role", "name", "skills", "company_name"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range demoAccounts() {
			skills := it.Skills
			if skills == nil {
				skills = []string{}
			}
			_, err := tx.Exec(
				ctx,
				`INSERT INTO users (id, email, password_hash, role, name, skills, company_name)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
				 ON CONFLICT (email) DO NOTHING`,
				it.Email,
				string(hash),
				it.Role,
				it.Name,
				skills,
				it.CompanyName,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
