package livestock

import (
	"context"
	"fmt"
)

// SalesReportPDFUseCase arma el reporte y lo entrega como PDF.
type SalesReportPDFUseCase struct {
	builder SalesReportBuilder
	pdfGen  SalesReportPDFGenerator
}

// NewSalesReportPDFUseCase construye el caso de uso.
func NewSalesReportPDFUseCase(builder SalesReportBuilder, pdfGen SalesReportPDFGenerator) *SalesReportPDFUseCase {
	return &SalesReportPDFUseCase{builder: builder, pdfGen: pdfGen}
}

// GeneratePDF devuelve los bytes del PDF del reporte filtrado por member.
func (uc *SalesReportPDFUseCase) GeneratePDF(ctx context.Context, member string) ([]byte, error) {
	report, err := uc.builder.BuildSalesReport(ctx, member)
	if err != nil {
		return nil, err
	}
	b, err := uc.pdfGen.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("generando PDF del reporte: %w", err)
	}
	return b, nil
}
