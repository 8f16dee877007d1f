package matching

// Result is the overlap between one candidate and one job. It is computed
// per request and never stored.
type Result struct {
	MatchScore    int
	IsMatch       bool
	MatchedSkills []string
	MissingSkills []string
}

// Score lets Result and anything embedding it be ranked.
func (r Result) Score() int {
	return r.MatchScore
}

// Evaluate compares a candidate's skills against a job's required skills.
// Matched and missing skills are reported with the job's spelling, in the
// job's order. Any single shared skill makes IsMatch true.
func Evaluate(candidateSkills, requiredSkills []string) Result {
	return EvaluateSets(Normalize(candidateSkills), Normalize(requiredSkills))
}

// EvaluateSets is Evaluate for already normalized sets, so a caller scoring
// one side against many can normalize that side once per request.
func EvaluateSets(candidate, required SkillSet) Result {
	matched := make([]string, 0, required.Len())
	missing := make([]string, 0)

	for _, key := range required.keys {
		if candidate.Has(key) {
			matched = append(matched, required.Display(key))
			continue
		}
		missing = append(missing, required.Display(key))
	}

	return Result{
		MatchScore:    percent(len(matched), required.Len()),
		IsMatch:       len(matched) > 0,
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// percent rounds part/total*100 half-up using integer math.
func percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	if part >= total {
		return 100
	}
	return (200*part + total) / (2 * total)
}
