package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/parsa-dev/crm-pro/internal/application/transfer"
	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
)

// TenantHandler serves the read-only ops endpoints: tenant listing, data
// summaries, and on-demand snapshot export.
type TenantHandler struct {
	tenants repository.TenantRepository
	export  *transfer.ExportUseCase
}

func NewTenantHandler(tenants repository.TenantRepository, export *transfer.ExportUseCase) *TenantHandler {
	return &TenantHandler{tenants: tenants, export: export}
}

// List returns every tenant ordered by slug.
func (h *TenantHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenants.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := TenantListResponse{Tenants: make([]TenantResponse, 0, len(tenants))}
	for _, t := range tenants {
		out.Tenants = append(out.Tenants, TenantResponse{
			ID:        t.ID,
			Slug:      t.Slug,
			Name:      t.Name,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
		})
	}
	out.Total = len(out.Tenants)
	return c.JSON(out)
}

// Summary reports per-table row counts for one tenant.
func (h *TenantHandler) Summary(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_SLUG", Message: "tenant slug is required"})
	}
	doc, err := h.export.Export(transfer.ExportOptions{TenantSlug: slug, IncludeSessions: true})
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := TenantSummaryResponse{Slug: slug, TotalRows: doc.TotalRows()}
	for _, tc := range doc.Counts() {
		out.Tables = append(out.Tables, TableCountResponse{Table: tc.Table, Rows: tc.Rows})
	}
	return c.JSON(out)
}

// Export builds a snapshot of one tenant and returns it as the response
// body. Sessions are only included when asked for explicitly.
func (h *TenantHandler) Export(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_SLUG", Message: "tenant slug is required"})
	}
	opts := transfer.ExportOptions{
		TenantSlug:      slug,
		IncludeSessions: c.QueryBool("includeSessions", false),
	}
	doc, err := h.export.Export(opts)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(doc)
}
