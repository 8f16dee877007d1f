package matching

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SkillSet is a case-insensitive, de-duplicated collection of skills.
// Keys keep first-seen order; Display maps a key back to the spelling it
// was first seen with.
type SkillSet struct {
	keys    []string
	display map[string]string
}

// Normalize trims, NFC-composes and lower-cases every entry, drops blanks
// and collapses duplicates. A nil input yields an empty set. The stored
// spelling is composed too, so "e" + U+0301 and "é" read back alike.
func Normalize(skills []string) SkillSet {
	set := SkillSet{
		keys:    make([]string, 0, len(skills)),
		display: make(map[string]string, len(skills)),
	}
	for _, raw := range skills {
		orig := norm.NFC.String(strings.TrimSpace(raw))
		key := strings.ToLower(orig)
		if key == "" {
			continue
		}
		if _, ok := set.display[key]; ok {
			continue
		}
		set.keys = append(set.keys, key)
		set.display[key] = orig
	}
	return set
}

// NormalizeKeys is Normalize followed by Keys.
func NormalizeKeys(skills []string) []string {
	return Normalize(skills).Keys()
}

func (s SkillSet) Len() int {
	return len(s.keys)
}

func (s SkillSet) Has(key string) bool {
	_, ok := s.display[key]
	return ok
}

func (s SkillSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Display returns the original spelling for a normalized key.
func (s SkillSet) Display(key string) string {
	if v, ok := s.display[key]; ok {
		return v
	}
	return key
}

// Values returns the first-seen spellings in order. It is what gets stored
// when a user or job saves a skill list.
func (s SkillSet) Values() []string {
	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.display[k])
	}
	return out
}
