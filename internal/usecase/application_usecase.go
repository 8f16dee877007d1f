package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, auth user.AuthContext, jobID uuid.UUID, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, auth user.AuthContext) ([]application.Application, error)
	ListForJob(ctx context.Context, auth user.AuthContext, jobID uuid.UUID) ([]application.Application, error)
	SetStatus(ctx context.Context, auth user.AuthContext, id uuid.UUID, status string) (application.Application, error)
}

type Application struct {
	apps application.Repository
	jobs job.Repository
}

func NewApplicationUsecase(apps application.Repository, jobs job.Repository) *Application {
	return &Application{apps: apps, jobs: jobs}
}

func (u *Application) Apply(ctx context.Context, auth user.AuthContext, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if err := requireRole(auth, user.RoleJobseeker); err != nil {
		return application.Application{}, err
	}

	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return application.Application{}, mapJobRepoError(err)
	}
	if !p.IsOpen() {
		return application.Application{}, ErrJobNotOpen
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: auth.UserID,
		CoverLetter: strings.TrimSpace(coverLetter),
		Status:      application.StatusPending,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, mapJobRepoError(err)
	}

	return u.get(ctx, a.ID)
}

func (u *Application) ListMine(ctx context.Context, auth user.AuthContext) ([]application.Application, error) {
	if err := requireRole(auth, user.RoleJobseeker); err != nil {
		return nil, err
	}
	items, err := u.apps.ListByCandidate(ctx, auth.UserID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func (u *Application) ListForJob(ctx context.Context, auth user.AuthContext, jobID uuid.UUID) ([]application.Application, error) {
	if err := u.ownsJob(ctx, auth, jobID); err != nil {
		return nil, err
	}
	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// SetStatus lets the employer who owns the job move an application along.
func (u *Application) SetStatus(ctx context.Context, auth user.AuthContext, id uuid.UUID, status string) (application.Application, error) {
	st, ok := application.ParseStatus(status)
	if !ok {
		return application.Application{}, validationErr(errors.New("status must be one of pending, reviewed, accepted, rejected"))
	}
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return application.Application{}, err
	}

	a, err := u.get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if err := u.ownsJob(ctx, auth, a.JobID); err != nil {
		return application.Application{}, err
	}

	if err := u.apps.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, storageErr(err)
	}
	return u.get(ctx, id)
}

func (u *Application) get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, storageErr(err)
	}
	return a, nil
}

func (u *Application) ownsJob(ctx context.Context, auth user.AuthContext, jobID uuid.UUID) error {
	if err := requireRole(auth, user.RoleEmployer); err != nil {
		return err
	}
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	if !p.OwnedBy(auth.UserID) {
		return ErrNotOwner
	}
	return nil
}
