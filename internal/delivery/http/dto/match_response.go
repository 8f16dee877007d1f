package dto

import (
	"jobboard/internal/domain/matching"
	"jobboard/internal/usecase"
)

type MatchResultResponse struct {
	MatchScore    int      `json:"match_score"`
	IsMatch       bool     `json:"is_match"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type JobMatchResponse struct {
	Job JobResponse `json:"job"`
	MatchResultResponse
}

type CandidateMatchResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	MatchResultResponse
}

func NewMatchResultResponse(r matching.Result) MatchResultResponse {
	return MatchResultResponse{
		MatchScore:    r.MatchScore,
		IsMatch:       r.IsMatch,
		MatchedSkills: nonNil(r.MatchedSkills),
		MissingSkills: nonNil(r.MissingSkills),
	}
}

func NewJobMatchResponses(ms []usecase.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, JobMatchResponse{Job: NewJobResponse(m.Job), MatchResultResponse: NewMatchResultResponse(m.Result)})
	}
	return out
}

func NewCandidateMatchResponses(ms []usecase.CandidateMatch) []CandidateMatchResponse {
	out := make([]CandidateMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, CandidateMatchResponse{Candidate: NewCandidateResponse(m.Candidate), MatchResultResponse: NewMatchResultResponse(m.Result)})
	}
	return out
}
