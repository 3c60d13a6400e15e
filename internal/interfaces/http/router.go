package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/auth"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	MovementUC     *livestock.MovementUseCase
	ExitReasonsUC  *livestock.ExitReasonsUseCase
	SalesReport    livestock.SalesReportBuilder
	SalesReportPDF *livestock.SalesReportPDFUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	requireAuth := AuthMiddleware(deps.JWTSecret)

	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", requireAuth, adminOnly, authHandler.Register)

	protected := api.Group("/", requireAuth)

	movementHandler := NewMovementHandler(deps.MovementUC, deps.ExitReasonsUC)
	movements := protected.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Post("/", adminOnly, movementHandler.Create)
	movements.Get("/members", movementHandler.Members)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Get("/:id/exit-reasons", movementHandler.ListExitReasons)
	movements.Post("/:id/exit-reasons", adminOnly, movementHandler.RegisterExitReasons)

	reportHandler := NewSalesReportHandler(deps.SalesReport, deps.SalesReportPDF)
	reports := protected.Group("/reports")
	reports.Get("/sales", reportHandler.Get)
	reports.Get("/sales/pdf", reportHandler.GetPDF)
}
