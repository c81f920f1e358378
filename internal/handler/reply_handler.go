package handler

import (
	"forum-live-be/internal/dto"
	"forum-live-be/internal/pkg/serverutils"
	"forum-live-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReplyHandler interface {
	RegisterRoutes(r fiber.Router)
}

type replyHandler struct {
	service service.IReplyService
}

func NewReplyHandler(service service.IReplyService) IReplyHandler {
	return &replyHandler{service: service}
}

func (h *replyHandler) RegisterRoutes(r fiber.Router) {
	threads := r.Group("/threads")
	threads.Get("/:id/replies", h.List)
	threads.Post("/:id/replies", serverutils.JwtMiddleware, h.Create)

	replies := r.Group("/replies")
	replies.Use(serverutils.JwtMiddleware)
	replies.Post("/:id/like", h.Like)
	replies.Delete("/:id", h.Delete)
}

func (h *replyHandler) Create(ctx *fiber.Ctx) error {
	userID, userName, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}
	threadID, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateReplyRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	reply, err := h.service.Create(ctx.UserContext(), threadID, userID, userName, req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Reply posted",
		"data":    reply,
	})
}

func (h *replyHandler) List(ctx *fiber.Ctx) error {
	threadID, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	replies, total, err := h.service.ListByThread(ctx.UserContext(), threadID, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    replies,
		"total":   total,
	})
}

func (h *replyHandler) Like(ctx *fiber.Ctx) error {
	userID, userName, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}
	replyID, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := h.service.Like(ctx.UserContext(), replyID, userID, userName)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    res,
	})
}

func (h *replyHandler) Delete(ctx *fiber.Ctx) error {
	userID, _, err := serverutils.UserIdentity(ctx)
	if err != nil {
		return err
	}
	replyID, err := parseIDParam(ctx)
	if err != nil {
		return err
	}

	if err := h.service.Delete(ctx.UserContext(), replyID, userID); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply deleted",
	})
}

func parseIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}
