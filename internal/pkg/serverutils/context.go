package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserIdentity reads the authenticated user from fiber locals set by
// JwtMiddleware.
func UserIdentity(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	idStr, _ := ctx.Locals("user_id").(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid session")
	}
	name, _ := ctx.Locals("user_name").(string)
	return userID, name, nil
}
