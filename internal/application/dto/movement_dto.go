package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest registro diario de entradas y salidas de un socio.
// Balance y Total son opcionales: si faltan se calculan.
type CreateMovementRequest struct {
	Member      string           `json:"member"`
	Date        string           `json:"date"` // YYYY-MM-DD
	Entries     int              `json:"entries"`
	Exits       int              `json:"exits"`
	Balance     *int             `json:"balance,omitempty"`
	TotalKg     decimal.Decimal  `json:"total_kg"`
	PricePerKg  decimal.Decimal  `json:"price_per_kg"`
	FreightCost decimal.Decimal  `json:"freight_cost"`
	Commission  decimal.Decimal  `json:"commission"`
	AnimalValue decimal.Decimal  `json:"animal_value"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// MovementResponse registro tal como se guardó.
type MovementResponse struct {
	ID          string          `json:"id"`
	Member      string          `json:"member"`
	Date        string          `json:"date"`
	Entries     int             `json:"entries"`
	Exits       int             `json:"exits"`
	Balance     int             `json:"balance"`
	TotalKg     decimal.Decimal `json:"total_kg"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	FreightCost decimal.Decimal `json:"freight_cost"`
	Commission  decimal.Decimal `json:"commission"`
	AnimalValue decimal.Decimal `json:"animal_value"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse página de registros.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MembersResponse socios distintos con registros.
type MembersResponse struct {
	Members []string `json:"members"`
}
