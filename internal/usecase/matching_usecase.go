package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobMatch is one job scored against a candidate.
type JobMatch struct {
	Job job.Posting
	matching.Result
}

// CandidateMatch is one candidate scored against a job.
type CandidateMatch struct {
	Candidate user.User
	matching.Result
}

type MatchLimits struct {
	Default int
	Max     int
}

type MatchingUsecase interface {
	MatchJobsForCandidate(ctx context.Context, auth user.AuthContext, limit int) ([]JobMatch, error)
	MatchCandidatesForJob(ctx context.Context, auth user.AuthContext, jobID uuid.UUID, limit int) ([]CandidateMatch, error)
	MatchJobsForUser(ctx context.Context, auth user.AuthContext, userID uuid.UUID, limit int) ([]JobMatch, error)
}

// Matching wires the evaluator and ranker to storage. Every flow keeps
// only results with at least one shared skill, ranks them by score and
// cuts the list at the requested limit. Nothing is cached between
// requests.
type Matching struct {
	gateway matching.Gateway
	jobs    job.Repository
	limits  MatchLimits
	logger  *zap.Logger
}

func NewMatchingUsecase(gateway matching.Gateway, jobs job.Repository, limits MatchLimits, logger *zap.Logger) *Matching {
	if limits.Default <= 0 {
		limits.Default = matching.DefaultLimit
	}
	if limits.Max <= 0 {
		limits.Max = matching.MaxLimit
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{gateway: gateway, jobs: jobs, limits: limits, logger: logger}
}

// MatchJobsForCandidate scores open jobs against the calling jobseeker's
// stored skills.
func (u *Matching) MatchJobsForCandidate(ctx context.Context, auth user.AuthContext, limit int) ([]JobMatch, error) {
	if err := requireRole(auth, user.RoleJobseeker); err != nil {
		return nil, err
	}
	return u.matchJobs(ctx, auth.UserID, limit)
}

// MatchJobsForUser is the bulk scan: any signed-in caller may score open
// jobs against another user's skills.
func (u *Matching) MatchJobsForUser(ctx context.Context, auth user.AuthContext, userID uuid.UUID, limit int) ([]JobMatch, error) {
	if !auth.Authenticated() {
		return nil, ErrUnauthorized
	}
	return u.matchJobs(ctx, userID, limit)
}

// MatchCandidatesForJob scores jobseekers against a job the calling
// employer owns.
func (u *Matching) MatchCandidatesForJob(ctx context.Context, auth user.AuthContext, jobID uuid.UUID, limit int) ([]CandidateMatch, error) {
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return nil, err
	}
	n, err := u.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapJobRepoError(err)
	}
	if !p.OwnedBy(auth.UserID) {
		return nil, ErrNotOwner
	}

	required := matching.Normalize(p.Skills)
	if required.Len() == 0 {
		return []CandidateMatch{}, nil
	}

	candidates, err := u.gateway.FetchCandidatesWithSkills(ctx, required.Keys())
	if err != nil {
		return nil, storageErr(err)
	}

	out := make([]CandidateMatch, 0, len(candidates))
	for _, c := range candidates {
		res := matching.EvaluateSets(matching.Normalize(c.Skills), required)
		if !res.IsMatch {
			continue
		}
		c.PasswordHash = ""
		out = append(out, CandidateMatch{Candidate: c, Result: res})
	}

	ranked := matching.Rank(out, n)
	u.logger.Debug("candidates matched",
		zap.String("job_id", jobID.String()),
		zap.Int("scanned", len(candidates)),
		zap.Int("matched", len(out)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

func (u *Matching) matchJobs(ctx context.Context, candidateID uuid.UUID, limit int) ([]JobMatch, error) {
	n, err := u.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	skills, err := u.gateway.FetchCandidateSkills(ctx, candidateID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr(err)
	}

	candidate := matching.Normalize(skills)
	if candidate.Len() == 0 {
		return []JobMatch{}, nil
	}

	jobs, err := u.gateway.FetchOpenJobs(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	out := make([]JobMatch, 0, len(jobs))
	for _, p := range jobs {
		res := matching.EvaluateSets(candidate, matching.Normalize(p.Skills))
		if !res.IsMatch {
			continue
		}
		out = append(out, JobMatch{Job: p, Result: res})
	}

	ranked := matching.Rank(out, n)
	u.logger.Debug("jobs matched",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("scanned", len(jobs)),
		zap.Int("matched", len(out)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// resolveLimit maps 0 to the default and caps at the configured maximum.
func (u *Matching) resolveLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return u.limits.Default, nil
	case limit < 0:
		return 0, validationErr(errors.New("limit must be positive"))
	case limit > u.limits.Max:
		return u.limits.Max, nil
	default:
		return limit, nil
	}
}
