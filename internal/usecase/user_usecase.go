package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"
)

// UpdateProfileInput holds the editable profile fields. Nil leaves a field
// as it is; an empty string clears an optional field.
type UpdateProfileInput struct {
	Name            *string
	Skills          *[]string
	ResumeURL       *string
	ProfileImageURL *string
	CompanyName     *string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, auth user.AuthContext) (user.User, error)
	UpdateProfile(ctx context.Context, auth user.AuthContext, in UpdateProfileInput) (user.User, error)
}

type User struct {
	users user.Repository
}

func NewUserUsecase(users user.Repository) *User {
	return &User{users: users}
}

func (u *User) GetProfile(ctx context.Context, auth user.AuthContext) (user.User, error) {
	if !auth.Authenticated() {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.load(ctx, auth)
	if err != nil {
		return user.User{}, err
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *User) UpdateProfile(ctx context.Context, auth user.AuthContext, in UpdateProfileInput) (user.User, error) {
	if !auth.Authenticated() {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.load(ctx, auth)
	if err != nil {
		return user.User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, validationErr(errors.New("name must not be blank"))
		}
		usr.Name = name
	}
	if in.Skills != nil {
		if usr.Role != user.RoleJobseeker {
			return user.User{}, validationErr(errors.New("only jobseekers have skills"))
		}
		usr.Skills = matching.Normalize(*in.Skills).Values()
	}
	if in.ResumeURL != nil {
		v, err := optionalURL("resume_url", *in.ResumeURL)
		if err != nil {
			return user.User{}, err
		}
		usr.ResumeURL = v
	}
	if in.ProfileImageURL != nil {
		v, err := optionalURL("profile_image_url", *in.ProfileImageURL)
		if err != nil {
			return user.User{}, err
		}
		usr.ProfileImageURL = v
	}
	if in.CompanyName != nil {
		if usr.Role != user.RoleEmployer {
			return user.User{}, validationErr(errors.New("only employers have a company name"))
		}
		usr.CompanyName = optionalString(*in.CompanyName)
	}

	if err := u.users.UpdateUser(ctx, usr); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, storageErr(err)
	}

	usr.PasswordHash = ""
	return usr, nil
}

func (u *User) load(ctx context.Context, auth user.AuthContext) (user.User, error) {
	usr, err := u.users.GetUserByID(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, storageErr(err)
	}
	return usr, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalURL accepts an empty value (clears the field) or an absolute
// http(s) URL. Files themselves are stored elsewhere.
func optionalURL(field, raw string) (*string, error) {
	v := optionalString(raw)
	if v == nil {
		return nil, nil
	}
	parsed, err := url.Parse(*v)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, validationErr(fmt.Errorf("%s must be an absolute http(s) URL", field))
	}
	return v, nil
}
