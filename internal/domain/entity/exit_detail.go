package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExitCause causa de una salida de inventario. Los valores son los que se persisten.
type ExitCause string

const (
	ExitCauseSale  ExitCause = "ventas"
	ExitCauseDeath ExitCause = "muerte"
	ExitCauseTheft ExitCause = "robo"
)

// DefaultSaleNotes observación por defecto de las salidas por venta.
const DefaultSaleNotes = "venta"

// Valid indica si la causa pertenece al conjunto cerrado {ventas, muerte, robo}.
func (c ExitCause) Valid() bool {
	switch c {
	case ExitCauseSale, ExitCauseDeath, ExitCauseTheft:
		return true
	}
	return false
}

// ParseExitCause acepta el valor persistido o su alias en inglés.
func ParseExitCause(s string) (ExitCause, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ventas", "venta", "sale":
		return ExitCauseSale, true
	case "muerte", "death":
		return ExitCauseDeath, true
	case "robo", "theft":
		return ExitCauseTheft, true
	}
	return "", false
}

// ExitDetailEntry atribuye parte de las salidas de un registro a una causa (tabla salidas_detalle).
// PricePerKg y TotalKg solo aplican a ventas; el reporte usa los del MovementRecord.
type ExitDetailEntry struct {
	ID               string
	MovementRecordID string
	Member           string
	Date             string
	Cause            ExitCause
	Quantity         int
	Notes            string
	PricePerKg       decimal.Decimal
	TotalKg          decimal.Decimal
	CreatedAt        time.Time
}
