package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLen = 8

type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	Name        string
	CompanyName *string
	Skills      []string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credentials: account creation and password checks. Token
// issuing lives one layer up.
type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	u, err := newAccount(in)
	if err != nil {
		return user.User{}, err
	}

	switch exists, err := s.users.ExistsByEmail(ctx, u.Email); {
	case err != nil:
		return user.User{}, internal(err)
	case exists:
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, internal(err)
	}
	u.PasswordHash = string(hash)

	// the unique index settles a race between two registrations that both
	// passed the lookup above
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, internal(err)
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, internal(err)
	}
	return withoutHash(created), nil
}

// newAccount validates in and builds the user to store, minus the hash.
// Skills only apply to jobseekers and a company name only to employers.
func newAccount(in RegisterInput) (user.User, error) {
	u := user.User{
		ID:     uuid.New(),
		Email:  normalizeEmail(in.Email),
		Name:   strings.TrimSpace(in.Name),
		Skills: []string{},
	}

	if u.Email == "" {
		return user.User{}, invalid("email is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return user.User{}, invalid("email is malformed")
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLen {
		return user.User{}, invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	role, ok := user.ParseRole(in.Role)
	if !ok {
		return user.User{}, invalid("role must be jobseeker or employer")
	}
	if u.Name == "" {
		return user.User{}, invalid("name is required")
	}
	u.Role = role

	switch role {
	case user.RoleJobseeker:
		u.Skills = matching.Normalize(in.Skills).Values()
	case user.RoleEmployer:
		if in.CompanyName != nil {
			if c := strings.TrimSpace(*in.CompanyName); c != "" {
				u.CompanyName = &c
			}
		}
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return withoutHash(u), nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func withoutHash(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
