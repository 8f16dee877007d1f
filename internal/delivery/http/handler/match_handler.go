package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/matches/jobs", h.JobsForMe)
	r.Get("/jobs/:id/candidates", h.CandidatesForJob)
	r.Get("/users/:user_id/matches", h.JobsForUser)
}

// JobsForMe ranks open jobs against the calling jobseeker's skills.
func (h *MatchHandler) JobsForMe(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a number", nil, err)
	}

	items, err := h.uc.MatchJobsForCandidate(c.Context(), middleware.AuthFromCtx(c), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobMatchResponses(items))
}

func (h *MatchHandler) CandidatesForJob(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a number", nil, err)
	}

	items, err := h.uc.MatchCandidatesForJob(c.Context(), middleware.AuthFromCtx(c), jobID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewCandidateMatchResponses(items))
}

func (h *MatchHandler) JobsForUser(c fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a number", nil, err)
	}

	items, err := h.uc.MatchJobsForUser(c.Context(), middleware.AuthFromCtx(c), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobMatchResponses(items))
}
