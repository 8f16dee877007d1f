package dto

import (
	"jobboard/internal/domain/user"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"
)

type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	CompanyName *string  `json:"company_name"`
	Skills      []string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User UserProfileResponse `json:"user"`
	TokenResponse
}

type UpdateProfileRequest struct {
	Name            *string   `json:"name"`
	Skills          *[]string `json:"skills"`
	ResumeURL       *string   `json:"resume_url"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CompanyName     *string   `json:"company_name"`
}

func (r UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.Skills == nil && r.ResumeURL == nil && r.ProfileImageURL == nil && r.CompanyName == nil
}

func (r UpdateProfileRequest) Input() usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		Name:            r.Name,
		Skills:          r.Skills,
		ResumeURL:       r.ResumeURL,
		ProfileImageURL: r.ProfileImageURL,
		CompanyName:     r.CompanyName,
	}
}

func (r RegisterRequest) Input() ucauth.RegisterInput {
	return ucauth.RegisterInput{
		Email:       r.Email,
		Password:    r.Password,
		Role:        r.Role,
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Skills:      r.Skills,
	}
}

func NewTokenResponse(p usecase.TokenPair) TokenResponse {
	return TokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func NewAuthResponse(u user.User, p usecase.TokenPair) AuthResponse {
	return AuthResponse{User: NewUserProfileResponse(u), TokenResponse: NewTokenResponse(p)}
}
