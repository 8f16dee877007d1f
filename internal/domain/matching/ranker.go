package matching

import "sort"

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type Scored interface {
	Score() int
}

// Rank orders items by descending score, keeping input order for ties, and
// keeps at most limit items. limit <= 0 yields an empty slice.
func Rank[T Scored](items []T, limit int) []T {
	if limit <= 0 || len(items) == 0 {
		return []T{}
	}

	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
