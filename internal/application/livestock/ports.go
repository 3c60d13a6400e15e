package livestock

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.MovementRecordRepository,
		detailRepo repository.ExitDetailRepository,
	) error) error
}

// SalesReportBuilder produce el reporte de ventas; lo implementa SalesReportUseCase.
type SalesReportBuilder interface {
	BuildSalesReport(ctx context.Context, member string) (*dto.SalesReportDTO, error)
}

// SalesReportPDFGenerator genera el PDF del reporte de ventas.
type SalesReportPDFGenerator interface {
	Generate(report *dto.SalesReportDTO) ([]byte, error)
}
