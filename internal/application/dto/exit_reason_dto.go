package dto

import "github.com/shopspring/decimal"

// ExitReasonInput una causa de salida asignada a un registro.
// PricePerKg y TotalKg solo aplican a ventas.
type ExitReasonInput struct {
	Cause      string          `json:"cause"` // ventas | muerte | robo
	Quantity   int             `json:"quantity"`
	Notes      string          `json:"notes,omitempty"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	TotalKg    decimal.Decimal `json:"total_kg"`
}

// RegisterExitReasonsRequest cuerpo de POST /api/movements/:id/exit-reasons.
type RegisterExitReasonsRequest struct {
	Reasons []ExitReasonInput `json:"reasons"`
}

// ExitDetailResponse fila de salidas_detalle.
type ExitDetailResponse struct {
	ID               string          `json:"id"`
	MovementRecordID string          `json:"movement_record_id"`
	Member           string          `json:"member"`
	Date             string          `json:"date"`
	Cause            string          `json:"cause"`
	Quantity         int             `json:"quantity"`
	Notes            string          `json:"notes"`
	PricePerKg       decimal.Decimal `json:"price_per_kg"`
	TotalKg          decimal.Decimal `json:"total_kg"`
}
