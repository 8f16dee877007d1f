package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultJobListLimit = 20
	MaxJobListLimit     = 50
)

// JobInput is the employer-editable part of a posting.
type JobInput struct {
	Title       string
	Description string
	Skills      []string
	SalaryMin   *int64
	SalaryMax   *int64
	Location    string
}

type JobUsecase interface {
	List(ctx context.Context, f job.ListFilter) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Create(ctx context.Context, auth user.AuthContext, in JobInput) (job.Posting, error)
	Update(ctx context.Context, auth user.AuthContext, id uuid.UUID, in JobInput) (job.Posting, error)
	SetStatus(ctx context.Context, auth user.AuthContext, id uuid.UUID, status string) (job.Posting, error)
	Delete(ctx context.Context, auth user.AuthContext, id uuid.UUID) error
	ListMine(ctx context.Context, auth user.AuthContext) ([]job.Posting, error)
}

type Job struct {
	jobs   job.Repository
	cache  JobCache
	logger *zap.Logger
}

func NewJobUsecase(jobs job.Repository, cache JobCache, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{jobs: jobs, cache: cache, logger: logger}
}

// List returns active postings, newest first. Results are cached per
// normalized filter until the next job write.
func (u *Job) List(ctx context.Context, f job.ListFilter) ([]job.Posting, error) {
	if f.Limit == 0 {
		f.Limit = DefaultJobListLimit
	}
	if f.Limit < 0 || f.Limit > MaxJobListLimit {
		return nil, validationErr(fmt.Errorf("limit must be between 1 and %d", MaxJobListLimit))
	}
	if f.Offset < 0 {
		return nil, validationErr(errors.New("offset must not be negative"))
	}
	f = normalizeListFilter(f)

	// The generation is read before the database. A write that lands in
	// between bumps it, so the page stored below is never served.
	key, cacheable := u.listCacheKey(ctx, f)
	if cacheable {
		var cached []job.Posting
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("job list cache read failed", zap.String("key", key), zap.Error(err))
		}
		if err == nil && hit {
			u.logger.Debug("job list cache hit", zap.String("key", key))
			return cached, nil
		}
		u.logger.Debug("job list cache miss", zap.String("key", key))
	}

	items, err := u.jobs.ListActive(ctx, f)
	if err != nil {
		return nil, storageErr(err)
	}

	if cacheable {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logger.Warn("job list cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (u *Job) listCacheKey(ctx context.Context, f job.ListFilter) (string, bool) {
	if u.cache == nil {
		return "", false
	}
	gen, err := u.cache.GetInt(ctx, jobListGenerationKey)
	if err != nil {
		u.logger.Warn("job list cache generation read failed", zap.Error(err))
		return "", false
	}
	return JobListCacheKey(gen, f), true
}

func (u *Job) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, mapJobRepoError(err)
	}
	return p, nil
}

func (u *Job) Create(ctx context.Context, auth user.AuthContext, in JobInput) (job.Posting, error) {
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return job.Posting{}, err
	}

	p := job.Posting{
		ID:         uuid.New(),
		EmployerID: auth.UserID,
		Status:     job.StatusActive,
	}
	in.apply(&p)
	if err := p.Validate(); err != nil {
		return job.Posting{}, validationErr(err)
	}

	if err := u.jobs.Create(ctx, p); err != nil {
		return job.Posting{}, storageErr(err)
	}
	u.invalidate(ctx)

	return u.Get(ctx, p.ID)
}

func (u *Job) Update(ctx context.Context, auth user.AuthContext, id uuid.UUID, in JobInput) (job.Posting, error) {
	p, err := u.owned(ctx, auth, id)
	if err != nil {
		return job.Posting{}, err
	}

	in.apply(&p)
	if err := p.Validate(); err != nil {
		return job.Posting{}, validationErr(err)
	}
	if err := u.jobs.Update(ctx, p); err != nil {
		return job.Posting{}, mapJobRepoError(err)
	}
	u.invalidate(ctx)

	return u.Get(ctx, id)
}

func (u *Job) SetStatus(ctx context.Context, auth user.AuthContext, id uuid.UUID, status string) (job.Posting, error) {
	st, ok := job.ParseStatus(status)
	if !ok {
		return job.Posting{}, validationErr(job.ErrInvalidStatus)
	}
	if _, err := u.owned(ctx, auth, id); err != nil {
		return job.Posting{}, err
	}

	if err := u.jobs.UpdateStatus(ctx, id, st); err != nil {
		return job.Posting{}, mapJobRepoError(err)
	}
	u.invalidate(ctx)

	return u.Get(ctx, id)
}

func (u *Job) Delete(ctx context.Context, auth user.AuthContext, id uuid.UUID) error {
	if _, err := u.owned(ctx, auth, id); err != nil {
		return err
	}
	if err := u.jobs.SoftDelete(ctx, id); err != nil {
		return mapJobRepoError(err)
	}
	u.invalidate(ctx)
	return nil
}

func (u *Job) ListMine(ctx context.Context, auth user.AuthContext) ([]job.Posting, error) {
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return nil, err
	}
	items, err := u.jobs.ListByEmployer(ctx, auth.UserID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// owned loads a posting and checks the caller is the employer who
// issued it.
func (u *Job) owned(ctx context.Context, auth user.AuthContext, id uuid.UUID) (job.Posting, error) {
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return job.Posting{}, err
	}
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Posting{}, mapJobRepoError(err)
	}
	if !p.OwnedBy(auth.UserID) {
		return job.Posting{}, ErrNotOwner
	}
	return p, nil
}

func (u *Job) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if _, err := u.cache.Incr(ctx, jobListGenerationKey); err != nil {
		u.logger.Warn("job list cache generation bump failed", zap.Error(err))
	}
	if err := u.cache.DeleteByPattern(ctx, jobListCachePattern); err != nil {
		u.logger.Warn("job list cache invalidation failed", zap.Error(err))
	}
}

func (in JobInput) apply(p *job.Posting) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Skills = matching.Normalize(in.Skills).Values()
	p.SalaryMin = in.SalaryMin
	p.SalaryMax = in.SalaryMax
	p.Location = strings.TrimSpace(in.Location)
}

func requireRole(auth user.AuthContext, role user.Role) error {
	if !auth.Authenticated() {
		return ErrUnauthorized
	}
	if !auth.Is(role) {
		return ErrRoleNotAllowed
	}
	return nil
}

func mapJobRepoError(err error) error {
	if errors.Is(err, job.ErrNotFound) {
		return ErrJobNotFound
	}
	return storageErr(err)
}
