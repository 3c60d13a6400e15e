package http

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
)

// SalesReportHandler reporte de ventas en JSON y PDF.
type SalesReportHandler struct {
	report livestock.SalesReportBuilder
	pdf    *livestock.SalesReportPDFUseCase
}

// NewSalesReportHandler construye el handler.
func NewSalesReportHandler(report livestock.SalesReportBuilder, pdf *livestock.SalesReportPDFUseCase) *SalesReportHandler {
	return &SalesReportHandler{report: report, pdf: pdf}
}

// Get godoc
// @Summary      Reporte de ventas con reparto 60/40
// @Description  Filas ordenadas por fecha descendente. Un socio solo ve sus propias ventas.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        member  query  string  false  "socio (vacío = todos)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *SalesReportHandler) Get(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro inválido"})
	}
	member, ok := scopeMember(c, req.Member)
	if !ok {
		return forbiddenMember(c)
	}
	out, err := h.report.BuildSalesReport(c.Context(), member)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        member  query  string  false  "socio (vacío = todos)"
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *SalesReportHandler) GetPDF(c *fiber.Ctx) error {
	member, ok := scopeMember(c, c.Query("member"))
	if !ok {
		return forbiddenMember(c)
	}
	b, err := h.pdf.GeneratePDF(c.Context(), member)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, pdfContentDisposition(member))
	return c.Send(b)
}

// pdfContentDisposition arma el adjunto con un filename ASCII de respaldo y filename* en UTF-8 (RFC 6266).
func pdfContentDisposition(member string) string {
	name := "ventas"
	if member = strings.TrimSpace(member); member != "" {
		name += "-" + strings.Join(strings.Fields(strings.ToLower(member)), "-")
	}
	ascii := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r > unicode.MaxASCII && unicode.IsLetter(r):
			return '_'
		}
		return -1
	}, name)
	return fmt.Sprintf(`attachment; filename="%s.pdf"; filename*=UTF-8''%s`, ascii, url.PathEscape(name+".pdf"))
}
