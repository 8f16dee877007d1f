package handler

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuth struct {
	err error

	gotRegister ucauth.RegisterInput
	gotLogin    ucauth.LoginInput
	gotRefresh  string
}

func (s *stubAuth) Register(_ context.Context, in ucauth.RegisterInput) (user.User, usecase.TokenPair, error) {
	s.gotRegister = in
	if s.err != nil {
		return user.User{}, usecase.TokenPair{}, s.err
	}
	return user.User{ID: uuid.New(), Email: in.Email, Role: user.Role(in.Role), Name: in.Name},
		usecase.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
}

func (s *stubAuth) Login(_ context.Context, in ucauth.LoginInput) (user.User, usecase.TokenPair, error) {
	s.gotLogin = in
	if s.err != nil {
		return user.User{}, usecase.TokenPair{}, s.err
	}
	return user.User{ID: uuid.New(), Email: in.Email}, usecase.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
}

func (s *stubAuth) Refresh(_ context.Context, token string) (usecase.TokenPair, error) {
	s.gotRefresh = token
	if s.err != nil {
		return usecase.TokenPair{}, s.err
	}
	return usecase.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil
}

type stubUsers struct {
	err   error
	calls int
	got   usecase.UpdateProfileInput
}

func (s *stubUsers) GetProfile(_ context.Context, auth user.AuthContext) (user.User, error) {
	if s.err != nil {
		return user.User{}, s.err
	}
	return user.User{ID: auth.UserID, Role: auth.Role, Name: "Ann"}, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, auth user.AuthContext, in usecase.UpdateProfileInput) (user.User, error) {
	s.calls++
	s.got = in
	if s.err != nil {
		return user.User{}, s.err
	}
	u := user.User{ID: auth.UserID, Role: auth.Role}
	if in.Name != nil {
		u.Name = *in.Name
	}
	return u, nil
}

type stubApplications struct {
	err error

	gotJob    uuid.UUID
	gotCover  string
	gotStatus string
}

func (s *stubApplications) Apply(_ context.Context, auth user.AuthContext, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	s.gotJob, s.gotCover = jobID, coverLetter
	if s.err != nil {
		return application.Application{}, s.err
	}
	return application.Application{ID: uuid.New(), JobID: jobID, CandidateID: auth.UserID, CoverLetter: coverLetter, Status: application.StatusPending}, nil
}

func (s *stubApplications) ListMine(context.Context, user.AuthContext) ([]application.Application, error) {
	return []application.Application{}, s.err
}

func (s *stubApplications) ListForJob(_ context.Context, _ user.AuthContext, jobID uuid.UUID) ([]application.Application, error) {
	s.gotJob = jobID
	return []application.Application{}, s.err
}

func (s *stubApplications) SetStatus(_ context.Context, _ user.AuthContext, id uuid.UUID, status string) (application.Application, error) {
	s.gotStatus = status
	if s.err != nil {
		return application.Application{}, s.err
	}
	st, _ := application.ParseStatus(status)
	return application.Application{ID: id, Status: st}, nil
}

func newAccountServer(auth usecase.AuthUsecase, users usecase.UserUsecase, apps usecase.ApplicationUsecase) testServer {
	tokens := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(zap.NewNop()).Middleware())

	api := app.Group("/api/v1")
	NewAuthHandler(auth).RegisterRoutes(api.Group("/auth"))

	protected := api.Group("", middleware.NewAuthMiddleware(tokens).Middleware())
	NewUserHandler(users).RegisterRoutes(protected)
	NewApplicationHandler(apps).RegisterRoutes(protected)

	return testServer{app: app, tokens: tokens}
}

func TestAuthHandler_Register(t *testing.T) {
	auth := &stubAuth{}
	srv := newAccountServer(auth, &stubUsers{}, &stubApplications{})

	resp, env := srv.do(t, "POST", "/api/v1/auth/register", "",
		`{"email":"a@example.com","password":"secret123","role":"jobseeker","name":"Ann","skills":["Go"]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "a@example.com", auth.gotRegister.Email)
	assert.Equal(t, []string{"Go"}, auth.gotRegister.Skills)
	assert.Nil(t, auth.gotRegister.CompanyName)

	data := env["data"].(map[string]any)
	assert.Equal(t, "acc", data["access_token"])
	assert.Equal(t, "ref", data["refresh_token"])
	assert.Equal(t, "Ann", data["user"].(map[string]any)["name"])

	resp, _ = srv.do(t, "POST", "/api/v1/auth/register", "", `{"email":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"email taken", "/api/v1/auth/register", usecase.ErrEmailAlreadyRegistered, fiber.StatusConflict},
		{"bad credentials", "/api/v1/auth/login", usecase.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"weak password", "/api/v1/auth/register", usecase.ErrValidation, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newAccountServer(&stubAuth{err: tc.err}, &stubUsers{}, &stubApplications{})
			resp, _ := srv.do(t, "POST", tc.path, "", `{"email":"a@example.com","password":"x"}`)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthHandler_RefreshUsesBearerHeader(t *testing.T) {
	auth := &stubAuth{}
	srv := newAccountServer(auth, &stubUsers{}, &stubApplications{})

	resp, _ := srv.do(t, "POST", "/api/v1/auth/refresh", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, auth.gotRefresh)

	resp, env := srv.do(t, "POST", "/api/v1/auth/refresh", user.RoleJobseeker, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, auth.gotRefresh)
	assert.Equal(t, "acc2", env["data"].(map[string]any)["access_token"])

	srv = newAccountServer(&stubAuth{err: usecase.ErrRefreshTokenExpired}, &stubUsers{}, &stubApplications{})
	resp, env = srv.do(t, "POST", "/api/v1/auth/refresh", user.RoleJobseeker, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Refresh token expired", env["message"])
}

func TestUserHandler_UpdateMeKeepsAbsentFields(t *testing.T) {
	users := &stubUsers{}
	srv := newAccountServer(&stubAuth{}, users, &stubApplications{})

	resp, env := srv.do(t, "PUT", "/api/v1/users/me", user.RoleJobseeker, `{"name":"Bo"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, users.got.Name)
	assert.Equal(t, "Bo", *users.got.Name)
	assert.Nil(t, users.got.Skills)
	assert.Nil(t, users.got.ResumeURL)
	assert.Equal(t, "Bo", env["data"].(map[string]any)["name"])

	resp, _ = srv.do(t, "PUT", "/api/v1/users/me", user.RoleJobseeker, `{"skills":[]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, users.got.Skills)
	assert.Empty(t, *users.got.Skills)
	assert.Nil(t, users.got.Name)
}

func TestUserHandler_UpdateMeRejectsBadBodies(t *testing.T) {
	users := &stubUsers{}
	srv := newAccountServer(&stubAuth{}, users, &stubApplications{})

	resp, env := srv.do(t, "PUT", "/api/v1/users/me", user.RoleJobseeker, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request payload", env["message"])

	resp, _ = srv.do(t, "PUT", "/api/v1/users/me", user.RoleJobseeker, `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.do(t, "PUT", "/api/v1/users/me", "", `{"name":"Bo"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, users.calls)
}

func TestUserHandler_GetMe(t *testing.T) {
	srv := newAccountServer(&stubAuth{}, &stubUsers{}, &stubApplications{})
	resp, env := srv.do(t, "GET", "/api/v1/users/me", user.RoleJobseeker, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ann", env["data"].(map[string]any)["name"])

	srv = newAccountServer(&stubAuth{}, &stubUsers{err: usecase.ErrUserNotFound}, &stubApplications{})
	resp, _ = srv.do(t, "GET", "/api/v1/users/me", user.RoleJobseeker, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestApplicationHandler_Apply(t *testing.T) {
	apps := &stubApplications{}
	srv := newAccountServer(&stubAuth{}, &stubUsers{}, apps)
	jobID := uuid.New()

	resp, env := srv.do(t, "POST", "/api/v1/jobs/"+jobID.String()+"/applications", user.RoleJobseeker, `{"cover_letter":"hi"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, jobID, apps.gotJob)
	assert.Equal(t, "hi", apps.gotCover)
	assert.Equal(t, "pending", env["data"].(map[string]any)["status"])

	resp, _ = srv.do(t, "POST", "/api/v1/jobs/"+jobID.String()+"/applications", user.RoleJobseeker, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Empty(t, apps.gotCover)

	resp, _ = srv.do(t, "POST", "/api/v1/jobs/not-a-uuid/applications", user.RoleJobseeker, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.do(t, "POST", "/api/v1/jobs/"+jobID.String()+"/applications", user.RoleJobseeker, `{"cover_letter":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestApplicationHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", usecase.ErrAlreadyApplied, fiber.StatusConflict},
		{"closed job", usecase.ErrJobNotFound, fiber.StatusNotFound},
		{"employer applies", usecase.ErrRoleNotAllowed, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newAccountServer(&stubAuth{}, &stubUsers{}, &stubApplications{err: tc.err})
			resp, _ := srv.do(t, "POST", "/api/v1/jobs/"+uuid.NewString()+"/applications", user.RoleJobseeker, "")
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestApplicationHandler_SetStatusAndLists(t *testing.T) {
	apps := &stubApplications{}
	srv := newAccountServer(&stubAuth{}, &stubUsers{}, apps)
	id := uuid.New()

	resp, env := srv.do(t, "PATCH", "/api/v1/applications/"+id.String(), user.RoleEmployer, `{"status":"accepted"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", apps.gotStatus)
	assert.Equal(t, "accepted", env["data"].(map[string]any)["status"])

	resp, _ = srv.do(t, "PATCH", "/api/v1/applications/bad", user.RoleEmployer, `{"status":"accepted"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = srv.do(t, "GET", "/api/v1/me/applications", user.RoleJobseeker, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, env["data"])

	jobID := uuid.New()
	resp, _ = srv.do(t, "GET", "/api/v1/jobs/"+jobID.String()+"/applications", user.RoleEmployer, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, jobID, apps.gotJob)
}
