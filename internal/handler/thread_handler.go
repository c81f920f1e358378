package handler

import (
	"forum-live-be/internal/dto"
	"forum-live-be/internal/pkg/serverutils"
	"forum-live-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IThreadHandler interface {
	RegisterRoutes(r fiber.Router)
}

type threadHandler struct {
	service service.IThreadService
}

func NewThreadHandler(service service.IThreadService) IThreadHandler {
	return &threadHandler{service: service}
}

func (h *threadHandler) RegisterRoutes(r fiber.Router) {
	threads := r.Group("/threads")
	threads.Get("/", h.List)
	threads.Get("/trending", h.Trending)
	threads.Get("/:id", h.Get)
	threads.Post("/", serverutils.JwtMiddleware, h.Create)
	threads.Put("/:id", serverutils.JwtMiddleware, h.Update)
	threads.Delete("/:id", serverutils.JwtMiddleware, h.Delete)
}

func (h *threadHandler) Create(ctx *fiber.Ctx) error {
	userID, userName, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateThreadRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	thread, err := h.service.Create(ctx.UserContext(), userID, userName, req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Thread created",
		"data":    thread,
	})
}

func (h *threadHandler) List(ctx *fiber.Ctx) error {
	var q dto.ThreadListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed query")
	}

	threads, total, err := h.service.List(ctx.UserContext(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    threads,
		"total":   total,
	})
}

func (h *threadHandler) Trending(ctx *fiber.Ctx) error {
	threads, err := h.service.Trending(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    threads,
	})
}

func (h *threadHandler) Get(ctx *fiber.Ctx) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	thread, err := h.service.GetByID(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    thread,
	})
}

func (h *threadHandler) Update(ctx *fiber.Ctx) error {
	userID, _, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateThreadRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	thread, err := h.service.Update(ctx.UserContext(), id, userID, req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Thread updated",
		"data":    thread,
	})
}

func (h *threadHandler) Delete(ctx *fiber.Ctx) error {
	userID, _, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	if err := h.service.Delete(ctx.UserContext(), id, userID); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Thread deleted",
	})
}
