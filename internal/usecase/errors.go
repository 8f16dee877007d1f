package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrJobNotFound         = fmt.Errorf("job %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)

	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotOwner            = fmt.Errorf("%w: caller does not own this resource", ErrUnauthorized)
	ErrRoleNotAllowed      = fmt.Errorf("%w: role not allowed", ErrUnauthorized)
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	ErrRefreshTokenExpired = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)

	ErrValidation = errors.New("validation failed")
	// ErrInvalidInput is kept for handlers that reject malformed requests
	// before reaching a usecase.
	ErrInvalidInput = ErrValidation

	ErrConflict               = errors.New("conflict")
	ErrEmailAlreadyRegistered = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAlreadyApplied         = fmt.Errorf("%w: already applied to this job", ErrConflict)
	ErrJobNotOpen             = fmt.Errorf("%w: job is not accepting applications", ErrConflict)

	ErrStorage = errors.New("storage failure")
)

// storageErr keeps the driver error reachable through errors.Is/As.
func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func validationErr(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// IsForbidden reports whether err is an authorization failure for an
// authenticated caller, as opposed to a missing or bad identity.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotOwner) || errors.Is(err, ErrRoleNotAllowed)
}
