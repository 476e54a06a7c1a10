package http

import "time"

// ErrorResponse is the uniform error body of the ops API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TenantResponse is one row of the tenant listing.
type TenantResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TenantListResponse wraps the tenant listing.
type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int              `json:"total"`
}

// TableCountResponse is one table's row count in a tenant summary.
type TableCountResponse struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// TenantSummaryResponse reports how much data a tenant holds, table by
// table.
type TenantSummaryResponse struct {
	Slug      string               `json:"slug"`
	TotalRows int                  `json:"totalRows"`
	Tables    []TableCountResponse `json:"tables"`
}
