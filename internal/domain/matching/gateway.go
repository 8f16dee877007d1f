package matching

import (
	"context"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

// Gateway is the read side the matching flows need from storage.
//
// FetchCandidateSkills returns user.ErrNotFound for an unknown candidate.
// FetchOpenJobs returns only active, non-deleted postings.
// FetchCandidatesWithSkills returns jobseekers holding at least one of the
// given skills, compared case-insensitively.
type Gateway interface {
	FetchCandidateSkills(ctx context.Context, candidateID uuid.UUID) ([]string, error)
	FetchOpenJobs(ctx context.Context) ([]job.Posting, error)
	FetchCandidatesWithSkills(ctx context.Context, required []string) ([]user.User, error)
}
