// Comando sales_report imprime el reporte de ventas en consola y opcionalmente lo exporta a PDF o CSV.
//
// Uso:
//
//	go run ./cmd/sales_report -member "Juan Perez" -pdf ventas.pdf -csv ventas.csv -latin1
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/csvexport"
	infrapdf "github.com/jhoicas/Ganaderia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ganaderia-api/pkg/config"
	"github.com/jhoicas/Ganaderia-api/pkg/format"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

func main() {
	member := flag.String("member", "", "socio a filtrar (vacío = todos)")
	pdfOut := flag.String("pdf", "", "ruta del PDF a generar")
	csvOut := flag.String("csv", "", "ruta del CSV a generar")
	latin1 := flag.Bool("latin1", false, "codificar el CSV en Windows-1252")
	timeout := flag.Duration("timeout", 30*time.Second, "tiempo máximo de consulta")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer repos.Close()

	builder := livestock.NewSalesReportUseCase(repos.Records, repos.Details, livestock.SalesReportOptions{
		IncludeAllCauses: cfg.Report.IncludeAllCauses,
	}, log)
	view := livestock.NewSalesReportView(builder, log)

	if _, err := view.Load(ctx, *member); err != nil {
		if errors.Is(err, domain.ErrFetchFailed) {
			fmt.Fprintln(os.Stderr, "Error al cargar los datos de ventas")
		} else {
			fmt.Fprintln(os.Stderr, "reporte:", err)
		}
		log.Error().Err(err).Str("member", *member).Msg("reporte de ventas")
		repos.Close()
		os.Exit(1)
	}
	report := view.Snapshot().Report

	if err := printReport(os.Stdout, report); err != nil {
		log.Fatal().Err(err).Msg("imprimir reporte")
	}

	if *pdfOut != "" {
		data, err := infrapdf.NewSalesReportGenerator().Generate(report)
		if err != nil {
			log.Fatal().Err(err).Msg("generar PDF")
		}
		if err := os.WriteFile(*pdfOut, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", *pdfOut).Msg("escribir PDF")
		}
		log.Info().Str("path", *pdfOut).Int("bytes", len(data)).Msg("PDF generado")
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, report, csvexport.Options{Windows1252: *latin1}); err != nil {
			log.Fatal().Err(err).Str("path", *csvOut).Msg("escribir CSV")
		}
		log.Info().Str("path", *csvOut).Msg("CSV generado")
	}
}

func printReport(w io.Writer, report *dto.SalesReportDTO) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Fecha\tSocio\tInv. total\tVentas\tMuertes\tRobos\tVr. kilo\tKilos\tTotal\t60%\t40%\tInv. actual\t")
	for _, r := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
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
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(report.Rows) == 0 {
		fmt.Fprintln(w, "No hay ventas registradas")
	}
	if report.Dropped > 0 {
		fmt.Fprintf(w, "%d venta(s) sin registro del mismo día omitidas\n", report.Dropped)
	}
	return nil
}

func writeCSV(path string, report *dto.SalesReportDTO, opts csvexport.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := csvexport.WriteSalesReport(f, report, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
