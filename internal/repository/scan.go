package repository

import (
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/matching"
)

type scanner interface {
	Scan(dest ...any) error
}

// cleanSkills trims, composes and de-duplicates entries. Casing is kept so
// the stored spelling can be shown back to users.
func cleanSkills(in []string) []string {
	return matching.Normalize(in).Values()
}

// lowerSkills returns the keys normalized_skills() produces for the same
// input, for use on the right-hand side of an && overlap.
func lowerSkills(in []string) []string {
	return matching.NormalizeKeys(in)
}

func noRows(err error) bool {
	return postgres.IsNoRows(err)
}
