package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

type jobData struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type jobMatch struct {
	Job           jobData  `json:"job"`
	MatchScore    int      `json:"match_score"`
	IsMatch       bool     `json:"is_match"`
	MatchedSkills []string `json:"matched_skills"`
}

type candidateMatch struct {
	Candidate struct {
		ID uuid.UUID `json:"id"`
	} `json:"candidate"`
	MatchScore int `json:"match_score"`
}

func TestIntegration_RegisterPostAndMatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := testConfig(t)
	db, err := dbpostgres.Connect(ctx, cfg.Database, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, app.RunMigrations(ctx, db, cfg.Database.MigrationsDir, zap.NewNop()))

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	defer cleanupUsers(t, db, suffix)

	c := &app.Container{Config: cfg, Logger: zap.NewNop(), DB: db}
	health, api := c.Handlers()
	f := app.New(cfg, zap.NewNop(), health, api).Fiber

	employer := register(t, f, map[string]any{
		"email": "employer-" + suffix + "@example.com", "password": "password123",
		"role": "employer", "name": "Employer", "company_name": "Acme",
	})
	other := register(t, f, map[string]any{
		"email": "other-" + suffix + "@example.com", "password": "password123",
		"role": "employer", "name": "Other", "company_name": "Globex",
	})
	seeker := register(t, f, map[string]any{
		"email": "seeker-" + suffix + "@example.com", "password": "password123",
		"role": "jobseeker", "name": "Seeker", "skills": []string{"React", "Node.js"},
	})

	frontend := postJob(t, f, employer.AccessToken, "Frontend "+suffix, []string{"react", "redux", "typescript", "css"})
	fullstack := postJob(t, f, employer.AccessToken, "Fullstack "+suffix, []string{"React", "node.js"})
	closed := postJob(t, f, employer.AccessToken, "Closed "+suffix, []string{"react"})

	status, _ := call(t, f, "PATCH", "/api/v1/jobs/"+closed.ID.String()+"/status", employer.AccessToken, map[string]any{"status": "closed"})
	require.Equal(t, fiber.StatusOK, status)

	status, env := call(t, f, "GET", "/api/v1/matches/jobs?limit=50", seeker.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	var matches []jobMatch
	require.NoError(t, json.Unmarshal(env.Data, &matches))

	scores := map[uuid.UUID]int{}
	for i, m := range matches {
		assert.True(t, m.IsMatch)
		if i > 0 {
			assert.GreaterOrEqual(t, matches[i-1].MatchScore, m.MatchScore)
		}
		scores[m.Job.ID] = m.MatchScore
	}
	assert.Equal(t, 100, scores[fullstack.ID])
	assert.Equal(t, 25, scores[frontend.ID])
	assert.NotContains(t, scores, closed.ID)

	status, env = call(t, f, "GET", "/api/v1/jobs/"+fullstack.ID.String()+"/candidates?limit=50", employer.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var candidates []candidateMatch
	require.NoError(t, json.Unmarshal(env.Data, &candidates))
	found := false
	for _, cm := range candidates {
		if cm.Candidate.ID == seeker.User.ID {
			found = true
			assert.Equal(t, 100, cm.MatchScore)
		}
	}
	assert.True(t, found, "seeker should be a candidate for the fullstack job")

	status, _ = call(t, f, "GET", "/api/v1/jobs/"+fullstack.ID.String()+"/candidates", other.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, f, "GET", "/api/v1/users/"+seeker.User.ID.String()+"/matches", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, f, "GET", "/api/v1/users/"+seeker.User.ID.String()+"/matches", other.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("JOBBOARD_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"), "disable")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBBOARD_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_*)")
	}

	return config.Config{
		App: config.AppConfig{AppName: "jobboard-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost: host, DBPort: port, DBName: name, DBUser: user, DBPassword: pass, DBSSLMode: ssl,
			ConnectTimeout: 5 * time.Second,
			MigrationsDir:  migrationsDir(t),
		},
		JWT: config.JWTConfig{
			AccessSecret:     "integration-access",
			RefreshSecret:    "integration-refresh",
			AccessExpiresIn:  time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Matching:  config.MatchingConfig{DefaultLimit: 10, MaxLimit: 50},
		RateLimit: config.RateLimitConfig{AuthMax: 100, AuthWindow: time.Minute},
	}
}

func migrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "resolve migrations dir: runtime.Caller failed")

	dir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "migrations"))
	files, _ := filepath.Glob(filepath.Join(dir, "V*__*.sql"))
	require.NotEmpty(t, files, "no migration files found in %s", dir)
	return dir
}

func cleanupUsers(t *testing.T, db database.DB, suffix string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.Exec(ctx, `DELETE FROM users WHERE email LIKE $1`, "%-"+suffix+"@example.com"); err != nil {
		t.Logf("cleanup: %v", err)
	}
}

func register(t *testing.T, f *fiber.App, body map[string]any) authData {
	t.Helper()
	status, env := call(t, f, "POST", "/api/v1/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var out authData
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)
	return out
}

func postJob(t *testing.T, f *fiber.App, token, title string, skills []string) jobData {
	t.Helper()
	status, env := call(t, f, "POST", "/api/v1/jobs", token, map[string]any{
		"title":       title,
		"description": "integration posting",
		"skills":      skills,
		"location":    "Remote",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var out jobData
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func call(t *testing.T, f *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.Test(req, fiber.TestConfig{Timeout: 10 * time.Second, FailOnTimeout: true})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
