package livestock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ganaderia-api/pkg/format"
)

func TestBuildSalesReport_Escenario(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "r1", "A", "2024-01-10", 50, 10, "1000")
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseSale, 10)

	uc := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{}, nil)
	report, err := uc.BuildSalesReport(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, 50, row.CumulativeInflow)
	assert.Equal(t, 10, row.SaleQuantity)
	assert.True(t, row.PctMajor.Equal(decimal.NewFromInt(600)))
	assert.True(t, row.PctMinor.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 40, row.CurrentInventory)
	assert.Equal(t, format.StatusPositive, row.InventoryStatus)
	assert.Equal(t, "10/1/2024", row.Display.Date)
	assert.Equal(t, "$600", row.Display.PctMajor)
	assert.Equal(t, "$1.000", row.Display.Total)
	assert.Equal(t, 1, report.Total)
	assert.Zero(t, report.Dropped)
}

func TestBuildSalesReport_FiltroPorSocio(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "a1", "A", "2024-01-10", 10, 1, "100")
	seedDetail(t, s, "a1", "A", "2024-01-10", entity.ExitCauseSale, 1)
	seedRecord(t, s, "b1", "B", "2024-01-10", 20, 2, "200")
	seedDetail(t, s, "b1", "B", "2024-01-10", entity.ExitCauseSale, 2)

	uc := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{}, nil)

	report, err := uc.BuildSalesReport(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "A", report.Rows[0].Member)
	assert.Equal(t, "A", report.Member)
}

func TestBuildSalesReport_SinVentasDevuelveVacio(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "r1", "A", "2024-01-10", 50, 0, "0")

	uc := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{}, nil)
	report, err := uc.BuildSalesReport(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
}

func TestBuildSalesReport_FallaDeLectura(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "r1", "A", "2024-01-10", 50, 10, "1000")
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseSale, 10)

	tests := []struct {
		name string
		uc   *livestock.SalesReportUseCase
	}{
		{"registros", livestock.NewSalesReportUseCase(failingRecords{s.MovementRecords()}, s.ExitDetails(), livestock.SalesReportOptions{}, nil)},
		{"salidas", livestock.NewSalesReportUseCase(s.MovementRecords(), failingDetails{s.ExitDetails()}, livestock.SalesReportOptions{}, nil)},
		{"salidas todas las causas", livestock.NewSalesReportUseCase(s.MovementRecords(), failingDetails{s.ExitDetails()}, livestock.SalesReportOptions{IncludeAllCauses: true}, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := tt.uc.BuildSalesReport(context.Background(), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFetchFailed)
			assert.ErrorIs(t, err, errStore)
			assert.Nil(t, report, "sin filas parciales")
		})
	}
}

func TestBuildSalesReport_MuertesYRobos(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "r1", "A", "2024-01-10", 20, 6, "300")
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseSale, 3)
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseDeath, 2)
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseTheft, 1)

	soloVentas := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{}, nil)
	report, err := soloVentas.BuildSalesReport(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Zero(t, report.Rows[0].DeathCount, "la consulta filtrada por venta no trae muertes")
	assert.Zero(t, report.Rows[0].TheftCount)

	todas := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{IncludeAllCauses: true}, nil)
	report, err = todas.BuildSalesReport(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 3, report.Rows[0].SaleQuantity, "la venta no cambia al incluir otras causas")
	assert.Equal(t, 2, report.Rows[0].DeathCount)
	assert.Equal(t, 1, report.Rows[0].TheftCount)
}

func TestBuildSalesReport_CuentaOmitidas(t *testing.T) {
	s := memory.NewStore()
	seedRecord(t, s, "r1", "A", "2024-01-10", 50, 10, "1000")
	seedDetail(t, s, "r1", "A", "2024-01-10", entity.ExitCauseSale, 10)
	seedDetail(t, s, "huerfano", "A", "2024-01-12", entity.ExitCauseSale, 4)

	uc := livestock.NewSalesReportUseCase(s.MovementRecords(), s.ExitDetails(), livestock.SalesReportOptions{}, nil)
	report, err := uc.BuildSalesReport(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	assert.Equal(t, 1, report.Dropped)
}
