package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ListFilter narrows the public job listing. Empty fields do not filter.
type ListFilter struct {
	Query    string
	Location string
	Skills   []string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	Update(ctx context.Context, p Posting) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, f ListFilter) ([]Posting, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Posting, error)
}
