package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jharkhand-tourism-mvp/server/internal/handlers"
)

// Services are the collaborators the HTTP surface is wired to.
type Services struct {
	Chat     handlers.ChatService
	Catalog  handlers.Catalog
	Ledger   handlers.Ledger
	Activity handlers.ActivityLogger
}

// New builds the Fiber application with all routes registered.
func New(s Services) *fiber.App {
	app := fiber.New()
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Jharkhand Tourism Main API is running 🚀"})
	})

	chatHandler := handlers.NewChatHandler(s.Chat)
	app.Post("/chat", chatHandler.HandleChat)

	productHandler := handlers.NewProductHandler(s.Catalog)
	app.Get("/products", productHandler.ListProducts)

	txHandler := handlers.NewTransactionHandler(s.Ledger)
	app.Post("/record-transaction", txHandler.Record)
	app.Get("/verify-transaction", txHandler.Verify)

	activityHandler := handlers.NewActivityHandler(s.Activity)
	app.Post("/log-activity", activityHandler.Log)

	return app
}
