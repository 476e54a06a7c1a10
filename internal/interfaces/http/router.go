package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/parsa-dev/crm-pro/internal/application/transfer"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
)

// RouterDeps carries the wired use cases into the router.
type RouterDeps struct {
	Tenants repository.TenantRepository
	Export  *transfer.ExportUseCase
}

// Router registers the ops API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	tenantHandler := NewTenantHandler(deps.Tenants, deps.Export)
	tenants := api.Group("/tenants")
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:slug/summary", tenantHandler.Summary)
	tenants.Post("/:slug/export", tenantHandler.Export)
}
