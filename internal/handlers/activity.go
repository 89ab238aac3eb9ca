package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jharkhand-tourism-mvp/server/internal/models"
)

// DefaultActivityUser is recorded when an activity log request carries no
// user id. Deliberately distinct from the chat default.
const DefaultActivityUser = "guest"

type ActivityHandler struct {
	logger ActivityLogger
}

func NewActivityHandler(logger ActivityLogger) *ActivityHandler {
	return &ActivityHandler{logger: logger}
}

func (h *ActivityHandler) Log(c *fiber.Ctx) error {
	var req models.ActivityLogRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Action == "" {
		return badRequest(c, "Action is required")
	}
	if req.UserID == "" {
		req.UserID = DefaultActivityUser
	}

	if err := h.logger.InsertActivityLog(c.UserContext(), req.UserID, req.Action); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.ActivityLogReply{Status: "success", Message: "Activity logged."})
}
