// Package pdf genera el reporte de ventas en PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: título + filtro de socio     │  fecha de generación         │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Socio | Inv. total | Ventas | Muertes | Robos | ...  │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  RESUMEN: filas, ventas omitidas, total 60% / 40%                    │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/pkg/format"
)

var _ livestock.SalesReportPDFGenerator = (*SalesReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 185, Green: 28, Blue: 28}
)

var columns = []struct {
	label string
	align align.Type
}{
	{"Fecha", align.Left},
	{"Socio", align.Left},
	{"Inv. total", align.Right},
	{"Ventas", align.Right},
	{"Muertes", align.Right},
	{"Robos", align.Right},
	{"Vr. kilo", align.Right},
	{"Kilos", align.Right},
	{"Total", align.Right},
	{"60%", align.Right},
	{"40%", align.Right},
	{"Inv. actual", align.Right},
}

// SalesReportGenerator implementa livestock.SalesReportPDFGenerator.
type SalesReportGenerator struct {
	now func() time.Time
}

// NewSalesReportGenerator construye el generador.
func NewSalesReportGenerator() *SalesReportGenerator {
	return &SalesReportGenerator{now: time.Now}
}

// Generate arma el documento y devuelve sus bytes.
func (g *SalesReportGenerator) Generate(report *dto.SalesReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de ventas", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(report, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.SalesReportDTO, now time.Time) core.Row {
	subtitle := "Ventas de todos los socios"
	if report.Member != "" {
		subtitle = "Ventas de " + format.MemberName(report.Member)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format(format.DisplayDateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(1).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

func tableRows(rows []dto.SalesReportRowDTO) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("No se encontraron ventas", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		))}
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		values := []string{
			r.Display.Date,
			format.MemberName(r.Member),
			format.Int(r.CumulativeInflow),
			format.Int(r.SaleQuantity),
			format.Int(r.DeathCount),
			format.Int(r.TheftCount),
			r.Display.PricePerKg,
			r.Display.TotalKg,
			r.Display.Total,
			r.Display.PctMajor,
			r.Display.PctMinor,
			format.Int(r.CurrentInventory),
		}
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			p := props.Text{Size: 7.5, Align: columns[i].align, Top: 1, Left: 1, Right: 1}
			if i == len(values)-1 && r.InventoryStatus == format.StatusNegative {
				p.Color = colorRed
				p.Style = fontstyle.Bold
			}
			cols = append(cols, col.New(1).Add(text.New(v, p)))
		}
		out = append(out, row.New(6).Add(cols...))
	}
	return out
}

func summaryRow(report *dto.SalesReportDTO) core.Row {
	major, minor := decimal.Zero, decimal.Zero
	for _, r := range report.Rows {
		major = major.Add(r.PctMajor)
		minor = minor.Add(r.PctMinor)
	}
	info := fmt.Sprintf("Filas: %d", report.Total)
	if report.Dropped > 0 {
		info += fmt.Sprintf("   |   Ventas sin registro del mismo día: %d", report.Dropped)
	}
	return row.New(14).Add(
		col.New(6).Add(text.New(info, props.Text{Size: 8, Top: 2, Color: colorGray})),
		col.New(3).Add(
			text.New("Total 60%:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2}),
			text.New("Total 40%:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7, Right: 2}),
		),
		col.New(3).Add(
			text.New(format.Currency(major), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary}),
			text.New(format.Currency(minor), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7, Color: colorPrimary}),
		),
	)
}
