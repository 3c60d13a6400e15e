package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de las fechas de registros y salidas (sin hora ni zona).
const DateLayout = "2006-01-02"

// MovementRecord representa el resumen de un día para un socio (tabla registros):
// entradas y salidas de animales más los campos financieros de la venta de ese día.
// Se espera un registro por (socio, fecha), pero el almacén no lo exige.
type MovementRecord struct {
	ID          string
	Member      string // socio
	Date        string // YYYY-MM-DD; se compara y ordena como string
	Entries     int
	Exits       int
	Balance     int // se almacena tal cual; normalmente Entries - Exits
	TotalKg     decimal.Decimal
	PricePerKg  decimal.Decimal
	FreightCost decimal.Decimal
	Commission  decimal.Decimal
	AnimalValue decimal.Decimal
	Total       decimal.Decimal // normalmente PricePerKg * TotalKg
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
