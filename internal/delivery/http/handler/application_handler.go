package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:id/applications", h.Apply)
	r.Get("/jobs/:id/applications", h.ListForJob)
	r.Get("/me/applications", h.ListMine)
	r.Patch("/applications/:id", h.SetStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	a, err := h.uc.Apply(c.Context(), middleware.AuthFromCtx(c), jobID, req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	items, err := h.uc.ListForJob(c.Context(), middleware.AuthFromCtx(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	items, err := h.uc.ListMine(c.Context(), middleware.AuthFromCtx(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	a, err := h.uc.SetStatus(c.Context(), middleware.AuthFromCtx(c), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewApplicationResponse(a))
}
