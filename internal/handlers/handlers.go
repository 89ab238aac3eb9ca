package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	errx "github.com/jharkhand-tourism-mvp/server/internal/core/error"
	"github.com/jharkhand-tourism-mvp/server/internal/models"
)

// ChatService answers a chat message. It never fails: conversational
// failures come back as fixed reply strings.
type ChatService interface {
	Handle(ctx context.Context, userID, message string) string
}

// Ledger proxies purchases and verifications to the blockchain service.
type Ledger interface {
	Record(ctx context.Context, productID int, price float64) (*models.SaleReceipt, error)
	Verify(ctx context.Context, productID, txID string) (*models.SaleReceipt, error)
}

// Catalog lists products from the persistent store.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ActivityLogger writes user activity rows to the persistent store.
type ActivityLogger interface {
	InsertActivityLog(ctx context.Context, userID, action string) error
}

// respondError maps an error chain to its HTTP status with a safe message.
// Raw internal detail never reaches the caller.
func respondError(c *fiber.Ctx, err error) error {
	status := errx.StatusOf(err)
	return c.Status(status).JSON(models.ErrorResponse{
		Error:   errorCode(status),
		Message: errx.MessageOf(err),
	})
}

func errorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   "validation_error",
		Message: message,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request body",
	})
}
