package dto

import (
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type JobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	SalaryMin   *int64   `json:"salary_min"`
	SalaryMax   *int64   `json:"salary_max"`
	Location    string   `json:"location"`
}

type JobStatusRequest struct {
	Status string `json:"status"`
}

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	EmployerID  uuid.UUID `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	SalaryMin   *int64    `json:"salary_min"`
	SalaryMax   *int64    `json:"salary_max"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:          p.ID,
		EmployerID:  p.EmployerID,
		Title:       p.Title,
		Description: p.Description,
		Skills:      nonNil(p.Skills),
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		Location:    p.Location,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewJobResponses(ps []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewJobResponse(p))
	}
	return out
}
