package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jharkhand-tourism-mvp/server/internal/models"
)

type TransactionHandler struct {
	ledger Ledger
}

func NewTransactionHandler(ledger Ledger) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Record forwards a purchase to the blockchain service and relays its
// receipt verbatim.
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var req models.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	receipt, err := h.ledger.Record(c.UserContext(), req.ProductID, req.Price)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

// Verify looks up a transaction id in the blockchain service's per-product
// sales list.
func (h *TransactionHandler) Verify(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	txID := c.Query("tx_id")
	if productID == "" || txID == "" {
		return badRequest(c, "product_id and tx_id are required")
	}

	receipt, err := h.ledger.Verify(c.UserContext(), productID, txID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}
