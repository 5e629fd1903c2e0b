package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/femibot-stock/internal/application/auth"
	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	AuthUC    *auth.AuthUseCase
	StockUC   *dashboard.StockUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Stock (requiere Bearer Token)
	stockHandler := NewStockHandler(deps.StockUC)
	stock := api.Group("/stock", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleViewer))
	stock.Get("/inventory", stockHandler.Inventory)
	stock.Get("/inventory/export", stockHandler.ExportInventory)
	stock.Get("/expirations", stockHandler.Expirations)
	stock.Get("/expirations/export", stockHandler.ExportExpirations)
	stock.Get("/source", stockHandler.Source)

	// Administración del archivo (solo admin)
	stock.Post("/upload", RequireRole(entity.RoleAdmin), stockHandler.Upload)
	stock.Post("/reload", RequireRole(entity.RoleAdmin), stockHandler.Reload)
}
