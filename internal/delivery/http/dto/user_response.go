package dto

import (
	"time"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Name            string    `json:"name"`
	Skills          []string  `json:"skills"`
	ResumeURL       *string   `json:"resume_url"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CompanyName     *string   `json:"company_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// CandidateResponse is the view of a jobseeker an employer gets when
// browsing matches. It leaves out the email address.
type CandidateResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Skills          []string  `json:"skills"`
	ResumeURL       *string   `json:"resume_url"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	return UserProfileResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            string(u.Role),
		Name:            u.Name,
		Skills:          nonNil(u.Skills),
		ResumeURL:       u.ResumeURL,
		ProfileImageURL: u.ProfileImageURL,
		CompanyName:     u.CompanyName,
		CreatedAt:       u.CreatedAt,
	}
}

func NewCandidateResponse(u user.User) CandidateResponse {
	return CandidateResponse{
		ID:              u.ID,
		Name:            u.Name,
		Skills:          nonNil(u.Skills),
		ResumeURL:       u.ResumeURL,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
