package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jharkhand-tourism-mvp/server/internal/models"
)

type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleChat answers a chat message. The router absorbs every conversational
// failure, so this endpoint only errors on malformed input.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Message == "" {
		return badRequest(c, "Message is required")
	}

	reply := h.chat.Handle(c.UserContext(), req.UserID, req.Message)
	return c.JSON(models.ChatReply{Reply: reply})
}
