package pdf_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/pdf"
)

func TestGenerate_ConFilas(t *testing.T) {
	report := &dto.SalesReportDTO{
		Member: "A",
		Rows: []dto.SalesReportRowDTO{{
			Date: "2024-01-10", Member: "A", CumulativeInflow: 50, SaleQuantity: 10,
			Total: decimal.NewFromInt(1000), PctMajor: decimal.NewFromInt(600), PctMinor: decimal.NewFromInt(400),
			CurrentInventory: -3, InventoryStatus: "negative",
			Display: dto.SalesReportRowDisplay{Date: "10/1/2024", Total: "$1.000", PctMajor: "$600", PctMinor: "$400"},
		}},
		Total:   1,
		Dropped: 2,
	}

	b, err := pdf.NewSalesReportGenerator().Generate(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerate_Vacio(t *testing.T) {
	b, err := pdf.NewSalesReportGenerator().Generate(&dto.SalesReportDTO{Rows: []dto.SalesReportRowDTO{}})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestGenerate_Nil(t *testing.T) {
	_, err := pdf.NewSalesReportGenerator().Generate(nil)
	assert.Error(t, err)
}
