package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

var errEmptyProfileUpdate = errors.New("no profile fields to update")

// UserHandler exposes the caller's own profile. There is no route to read
// another user's profile; employers see candidates through match results.
type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/me", h.GetMe)
	r.Put("/users/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	usr, err := h.uc.GetProfile(c.Context(), middleware.AuthFromCtx(c))
	return profile(c, usr, err)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	req := new(dto.UpdateProfileRequest)
	if err := c.Bind().Body(req); err != nil {
		return badRequest(err)
	}
	if req.Empty() {
		return badRequest(errEmptyProfileUpdate)
	}
	usr, err := h.uc.UpdateProfile(c.Context(), middleware.AuthFromCtx(c), req.Input())
	return profile(c, usr, err)
}

func profile(c fiber.Ctx, usr user.User, err error) error {
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewUserProfileResponse(usr))
}
