package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
)

const (
	jobListCachePrefix  = "jobs:list:"
	jobListCachePattern = jobListCachePrefix + "*"

	// jobListGenerationKey is bumped on every job write. It sits outside
	// jobListCachePattern so invalidation never deletes it.
	jobListGenerationKey = "jobs:generation"
)

// JobCache is the slice of the Redis client the job listing needs.
type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	GetInt(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

type jobListCacheKeyInput struct {
	Query    string   `json:"q"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
}

// normalizeSearchValue lower-cases s and collapses whitespace runs. The
// same value goes to the cache key and to the ILIKE pattern, so two
// filters share an entry only when they run the same query.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func normalizeListFilter(f job.ListFilter) job.ListFilter {
	f.Query = normalizeSearchValue(f.Query)
	f.Location = normalizeSearchValue(f.Location)
	f.Skills = matching.NormalizeKeys(f.Skills)
	return f
}

// JobListCacheKey hashes the normalized filter under the given cache
// generation. "Go, SQL" and " sql ,go" with the same paging share a key.
func JobListCacheKey(generation int64, f job.ListFilter) string {
	f = normalizeListFilter(f)
	skills := append([]string(nil), f.Skills...)
	sort.Strings(skills)

	in := jobListCacheKeyInput{
		Query:    f.Query,
		Location: f.Location,
		Skills:   skills,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobListCachePrefix + strconv.FormatInt(generation, 10) + ":" + hex.EncodeToString(sum[:])
}
