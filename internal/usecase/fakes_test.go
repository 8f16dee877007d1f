package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
	err   error
}

func newFakeUserRepo(us ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, err := r.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if r.err != nil {
		return user.User{}, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if r.err != nil {
		return user.User{}, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u user.User) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]job.Posting
	order []uuid.UUID
	err   error

	listCalls  int
	lastFilter job.ListFilter
	// afterList runs once ListActive has read its rows, outside the lock.
	afterList func()
}

func newFakeJobRepo(ps ...job.Posting) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[uuid.UUID]job.Posting{}}
	for _, p := range ps {
		r.jobs[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, p job.Posting) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	if r.err != nil {
		return job.Posting{}, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.jobs[id]
	if !ok || p.DeletedAt != nil {
		return job.Posting{}, job.ErrNotFound
	}
	return p, nil
}

func (r *fakeJobRepo) Update(_ context.Context, p job.Posting) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[p.ID]; !ok {
		return job.ErrNotFound
	}
	r.jobs[p.ID] = p
	return nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	p.Status = status
	r.jobs[id] = p
	return nil
}

func (r *fakeJobRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.jobs[id]
	if !ok || p.DeletedAt != nil {
		return job.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	r.jobs[id] = p
	return nil
}

func (r *fakeJobRepo) ListActive(_ context.Context, f job.ListFilter) ([]job.Posting, error) {
	out, err := r.listActive(f)
	if r.afterList != nil {
		r.afterList()
	}
	return out, err
}

func (r *fakeJobRepo) listActive(f job.ListFilter) ([]job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	r.lastFilter = f
	if r.err != nil {
		return nil, r.err
	}
	out := make([]job.Posting, 0)
	for _, id := range r.order {
		p := r.jobs[id]
		if p.IsOpen() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Posting, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.Posting, 0)
	for _, id := range r.order {
		p := r.jobs[id]
		if p.EmployerID == employerID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// openJobs mirrors the storage filter: active and not deleted.
func (r *fakeJobRepo) openJobs() []job.Posting {
	out, _ := r.ListActive(context.Background(), job.ListFilter{})
	return out
}

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]application.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[uuid.UUID]application.Application{}}
}

func (r *fakeAppRepo) Create(_ context.Context, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.apps {
		if x.JobID == a.JobID && x.CandidateID == a.CandidateID {
			return application.ErrDuplicate
		}
	}
	a.CreatedAt = time.Now()
	r.apps[a.ID] = a
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r *fakeAppRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.CandidateID == candidateID }), nil
}

func (r *fakeAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.JobID == jobID }), nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return application.ErrNotFound
	}
	a.Status = status
	r.apps[id] = a
	return nil
}

func (r *fakeAppRepo) filter(keep func(application.Application) bool) []application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.Application, 0)
	for _, a := range r.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// fakeGateway serves the matching reads from the fake repositories.
type fakeGateway struct {
	users *fakeUserRepo
	jobs  *fakeJobRepo
	err   error
}

func (g *fakeGateway) FetchCandidateSkills(ctx context.Context, id uuid.UUID) ([]string, error) {
	if g.err != nil {
		return nil, g.err
	}
	u, err := g.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Skills, nil
}

func (g *fakeGateway) FetchOpenJobs(context.Context) ([]job.Posting, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.jobs.openJobs(), nil
}

func (g *fakeGateway) FetchCandidatesWithSkills(_ context.Context, required []string) ([]user.User, error) {
	if g.err != nil {
		return nil, g.err
	}
	want := map[string]bool{}
	for _, s := range required {
		want[strings.ToLower(strings.TrimSpace(s))] = true
	}

	g.users.mu.Lock()
	defer g.users.mu.Unlock()
	out := make([]user.User, 0)
	for _, u := range g.users.users {
		if u.Role != user.RoleJobseeker {
			continue
		}
		for _, s := range u.Skills {
			if want[strings.ToLower(strings.TrimSpace(s))] {
				out = append(out, u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	counters map[string]int64
	deleted  []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, counters: map[string]int64{}}
}

func (c *fakeCache) GetInt(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[key], nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}
