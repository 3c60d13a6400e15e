package livestock

import (
	"context"
	"sync"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

// SalesReportState lo que un presentador necesita para pintar el reporte.
// Tras un error se conserva el último reporte cargado con éxito.
type SalesReportState struct {
	Loading bool
	Member  string
	Report  *dto.SalesReportDTO
	Err     error
}

// SalesReportView mantiene el estado del reporte para una vista.
// Si se cambia el filtro mientras una carga está en curso, gana la última llamada a Load:
// los resultados de cargas anteriores se descartan.
type SalesReportView struct {
	builder SalesReportBuilder
	log     *logger.Logger

	mu    sync.Mutex
	gen   uint64
	state SalesReportState
}

// NewSalesReportView construye la vista.
func NewSalesReportView(builder SalesReportBuilder, log *logger.Logger) *SalesReportView {
	return &SalesReportView{builder: builder, log: logger.OrNop(log).Named("sales_report_view")}
}

// Load ejecuta el reporte para member y aplica el resultado si sigue siendo la carga vigente.
// applied=false indica que otra carga empezó después y este resultado se descartó.
func (v *SalesReportView) Load(ctx context.Context, member string) (applied bool, err error) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Loading = true
	v.state.Member = member
	v.state.Err = nil
	v.mu.Unlock()

	report, err := v.builder.BuildSalesReport(ctx, member)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.log.Debug().Str("member", member).Uint64("gen", gen).Uint64("current", v.gen).
			Msg("resultado descartado por una carga más reciente")
		return false, err
	}
	v.state.Loading = false
	if err != nil {
		v.state.Err = err
		return true, err
	}
	v.state.Report = report
	return true, nil
}

// Snapshot copia del estado actual.
func (v *SalesReportView) Snapshot() SalesReportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
