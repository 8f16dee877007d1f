package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Get)
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.Create)
	r.Put("/jobs/:id", h.Update)
	r.Patch("/jobs/:id/status", h.SetStatus)
	r.Delete("/jobs/:id", h.Delete)
	r.Get("/employer/jobs", h.ListMine)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultJobListLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a number", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "offset must be a number", nil, err)
	}

	items, err := h.uc.List(c.Context(), job.ListFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Skills:   parseSkillsQuery(c.Query("skills")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.OK(c, response.Page{
		Items:  dto.NewJobResponses(items),
		Limit:  limit,
		Offset: offset,
		Count:  len(items),
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobResponse(p))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.Create(c.Context(), middleware.AuthFromCtx(c), jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewJobResponse(p))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.Update(c.Context(), middleware.AuthFromCtx(c), id, jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobResponse(p))
}

func (h *JobHandler) SetStatus(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.SetStatus(c.Context(), middleware.AuthFromCtx(c), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobResponse(p))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), middleware.AuthFromCtx(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	items, err := h.uc.ListMine(c.Context(), middleware.AuthFromCtx(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobResponses(items))
}

func jobInput(req dto.JobRequest) usecase.JobInput {
	return usecase.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Location:    req.Location,
	}
}
