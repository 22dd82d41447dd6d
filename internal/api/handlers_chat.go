package api

import (
	"errors"

	"github.com/aletheia-health/aletheia/internal/services"
	"github.com/gofiber/fiber/v2"
)

type chatInput struct {
	Message string `json:"message"`
}

// Chat forwards a message to the assistant model and returns its reply.
func (handler *Handler) Chat(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.chat == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "chat assistant is not configured")
	}

	input := chatInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	reply, err := handler.chat.Reply(c.Context(), input.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyChatMessage) {
			return apiError(c, fiber.StatusBadRequest, "message must not be empty")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to generate reply")
	}

	return c.JSON(fiber.Map{"response": reply})
}
