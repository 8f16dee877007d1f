package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusFilled Status = "filled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusClosed:
		return StatusClosed, true
	case StatusFilled:
		return StatusFilled, true
	default:
		return "", false
	}
}

type Posting struct {
	ID          uuid.UUID
	EmployerID  uuid.UUID
	Title       string
	Description string
	Skills      []string
	SalaryMin   *int64
	SalaryMax   *int64
	Location    string
	Status      Status
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Posting) IsOpen() bool {
	return p.Status == StatusActive && p.DeletedAt == nil
}

func (p Posting) OwnedBy(employerID uuid.UUID) bool {
	return employerID != uuid.Nil && p.EmployerID == employerID
}
