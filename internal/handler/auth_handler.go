package handler

import (
	"forum-live-be/internal/dto"
	"forum-live-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthHandler interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

type authHandler struct {
	service service.IAuthService
}

func NewAuthHandler(service service.IAuthService) IAuthHandler {
	return &authHandler{service: service}
}

func (h *authHandler) RegisterRoutes(r fiber.Router) {
	auth := r.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
}

func (h *authHandler) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := h.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "User registered successfully",
		"data":    res,
	})
}

func (h *authHandler) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := h.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Logged in successfully",
		"data":    res,
	})
}
