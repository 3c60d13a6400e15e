package livestock

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/internal/domain/salesreport"
	"github.com/jhoicas/Ganaderia-api/pkg/format"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

// SalesReportOptions ajustes del reporte.
type SalesReportOptions struct {
	// IncludeAllCauses trae todas las causas en la segunda consulta para poblar muertes y robos.
	// Con false la consulta filtra por venta y esas columnas quedan en cero.
	IncludeAllCauses bool
}

// SalesReportUseCase arma el reporte de ventas:
//   - Dos lecturas en paralelo: registros de movimiento y detalle de salidas.
//   - Agregación de ventas por (socio, fecha).
//   - Conciliación contra el registro del mismo día y reparto 60/40.
//
// No guarda estado entre llamadas.
type SalesReportUseCase struct {
	recordRepo repository.MovementRecordRepository
	detailRepo repository.ExitDetailRepository
	opts       SalesReportOptions
	log        *logger.Logger
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(
	recordRepo repository.MovementRecordRepository,
	detailRepo repository.ExitDetailRepository,
	opts SalesReportOptions,
	log *logger.Logger,
) *SalesReportUseCase {
	return &SalesReportUseCase{
		recordRepo: recordRepo,
		detailRepo: detailRepo,
		opts:       opts,
		log:        logger.OrNop(log).Named("sales_report"),
	}
}

// BuildSalesReport genera el reporte; member vacío = todos los socios.
// Si alguna lectura falla devuelve un error que envuelve domain.ErrFetchFailed y ninguna fila.
func (uc *SalesReportUseCase) BuildSalesReport(ctx context.Context, member string) (*dto.SalesReportDTO, error) {
	type recordsResult struct {
		rows []*entity.MovementRecord
		err  error
	}
	type detailsResult struct {
		rows []*entity.ExitDetailEntry
		err  error
	}

	recChan := make(chan recordsResult, 1)
	detChan := make(chan detailsResult, 1)

	go func() {
		rows, err := uc.recordRepo.ListAll(ctx)
		recChan <- recordsResult{rows, err}
	}()
	go func() {
		var (
			rows []*entity.ExitDetailEntry
			err  error
		)
		if uc.opts.IncludeAllCauses {
			rows, err = uc.detailRepo.ListAll(ctx)
		} else {
			rows, err = uc.detailRepo.ListByCause(ctx, entity.ExitCauseSale)
		}
		detChan <- detailsResult{rows, err}
	}()

	recRes := <-recChan
	detRes := <-detChan

	if recRes.err != nil {
		uc.log.Error().Err(recRes.err).Msg("lectura de registros fallida")
		return nil, fmt.Errorf("%w: registros: %w", domain.ErrFetchFailed, recRes.err)
	}
	if detRes.err != nil {
		uc.log.Error().Err(detRes.err).Msg("lectura de salidas fallida")
		return nil, fmt.Errorf("%w: salidas_detalle: %w", domain.ErrFetchFailed, detRes.err)
	}

	report := &dto.SalesReportDTO{Member: member, Rows: []dto.SalesReportRowDTO{}}
	if len(detRes.rows) == 0 {
		return report, nil
	}

	aggregates := salesreport.AggregateSales(detRes.rows)
	res := salesreport.Reconcile(aggregates, recRes.rows, detRes.rows, member)

	if len(res.Dropped) > 0 {
		ev := uc.log.Warn().Int("dropped", len(res.Dropped))
		first := res.Dropped[0]
		ev.Str("first_member", first.Member).Str("first_date", first.Date).
			Msg("ventas sin registro del mismo día omitidas del reporte")
	}

	report.Rows = make([]dto.SalesReportRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		report.Rows = append(report.Rows, toSalesReportRowDTO(r))
	}
	report.Total = len(report.Rows)
	report.Dropped = len(res.Dropped)

	uc.log.Debug().Str("member", member).Int("rows", report.Total).Msg("reporte de ventas generado")
	return report, nil
}

func toSalesReportRowDTO(r salesreport.Row) dto.SalesReportRowDTO {
	return dto.SalesReportRowDTO{
		Date:             r.Date,
		Member:           r.Member,
		CumulativeInflow: r.CumulativeInflow,
		SaleQuantity:     r.SaleQuantity,
		DeathCount:       r.DeathCount,
		TheftCount:       r.TheftCount,
		PricePerKg:       r.PricePerKg,
		TotalKg:          r.TotalKg,
		Total:            r.Total,
		PctMajor:         r.PctMajor,
		PctMinor:         r.PctMinor,
		CurrentInventory: r.CurrentInventory,
		InventoryStatus:  format.InventoryStatus(r.CurrentInventory),
		Display: dto.SalesReportRowDisplay{
			Date:       format.Date(r.Date),
			PricePerKg: format.Currency(r.PricePerKg),
			TotalKg:    format.Kilos(r.TotalKg),
			Total:      format.Currency(r.Total),
			PctMajor:   format.Currency(r.PctMajor),
			PctMinor:   format.Currency(r.PctMinor),
		},
	}
}
