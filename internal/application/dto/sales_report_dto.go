package dto

import "github.com/shopspring/decimal"

// SalesReportRequest filtro opcional por socio; vacío = todos.
type SalesReportRequest struct {
	Member string `query:"member"`
}

// SalesReportRowDTO fila del reporte con valores crudos y formateados para mostrar.
type SalesReportRowDTO struct {
	Date             string                `json:"date"`
	Member           string                `json:"member"`
	CumulativeInflow int                   `json:"cumulative_inflow"`
	SaleQuantity     int                   `json:"sale_quantity"`
	DeathCount       int                   `json:"death_count"`
	TheftCount       int                   `json:"theft_count"`
	PricePerKg       decimal.Decimal       `json:"price_per_kg"`
	TotalKg          decimal.Decimal       `json:"total_kg"`
	Total            decimal.Decimal       `json:"total"`
	PctMajor         decimal.Decimal       `json:"pct_60"`
	PctMinor         decimal.Decimal       `json:"pct_40"`
	CurrentInventory int                   `json:"current_inventory"`
	InventoryStatus  string                `json:"inventory_status"`
	Display          SalesReportRowDisplay `json:"display"`
}

// SalesReportRowDisplay textos listos para pantalla (fecha d/m/aaaa, pesos redondeados).
type SalesReportRowDisplay struct {
	Date       string `json:"date"`
	PricePerKg string `json:"price_per_kg"`
	TotalKg    string `json:"total_kg"`
	Total      string `json:"total"`
	PctMajor   string `json:"pct_60"`
	PctMinor   string `json:"pct_40"`
}

// SalesReportDTO reporte completo. Dropped cuenta las ventas sin registro del mismo día.
type SalesReportDTO struct {
	Member  string              `json:"member,omitempty"`
	Rows    []SalesReportRowDTO `json:"rows"`
	Total   int                 `json:"total"`
	Dropped int                 `json:"dropped"`
}
