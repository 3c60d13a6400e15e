// Package csvexport exporta el reporte de ventas a CSV para abrirlo en hojas de cálculo.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
)

// Options formato del archivo.
type Options struct {
	// Windows1252 codifica en CP-1252 para que Excel en español muestre bien las tildes.
	Windows1252 bool
	// Comma separador; por defecto ';' (la coma es el separador decimal en es-CO).
	Comma rune
}

var header = []string{
	"fecha", "socio", "inventario_total", "ventas", "muertes", "robos",
	"vr_kilo", "total_kilos", "total", "pct_60", "pct_40", "inventario_actual",
}

// WriteSalesReport escribe una fila por venta con los valores sin redondear.
func WriteSalesReport(w io.Writer, report *dto.SalesReportDTO, opts Options) error {
	if report == nil {
		return fmt.Errorf("csv: reporte nil")
	}
	out := w
	var enc *transform.Writer
	if opts.Windows1252 {
		enc = transform.NewWriter(w, charmap.Windows1252.NewEncoder())
		out = enc
	}

	cw := csv.NewWriter(out)
	cw.Comma = ';'
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range report.Rows {
		rec := []string{
			r.Date,
			r.Member,
			strconv.Itoa(r.CumulativeInflow),
			strconv.Itoa(r.SaleQuantity),
			strconv.Itoa(r.DeathCount),
			strconv.Itoa(r.TheftCount),
			r.PricePerKg.String(),
			r.TotalKg.String(),
			r.Total.String(),
			r.PctMajor.String(),
			r.PctMinor.String(),
			strconv.Itoa(r.CurrentInventory),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: fila %s/%s: %w", r.Member, r.Date, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	if enc != nil {
		return enc.Close()
	}
	return nil
}
