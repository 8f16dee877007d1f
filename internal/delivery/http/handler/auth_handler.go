package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler serves the credential endpoints. Every route here is public;
// the router puts them behind the per-IP rate limiter.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	req := new(dto.RegisterRequest)
	if err := c.Bind().Body(req); err != nil {
		return badRequest(err)
	}

	usr, pair, err := h.uc.Register(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewAuthResponse(usr, pair))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	req := new(dto.LoginRequest)
	if err := c.Bind().Body(req); err != nil {
		return badRequest(err)
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewAuthResponse(usr, pair))
}

// Refresh reads the refresh token from the bearer header, not the body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	token, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Missing refresh token", nil, nil)
	}

	pair, err := h.uc.Refresh(c.Context(), token)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewTokenResponse(pair))
}
