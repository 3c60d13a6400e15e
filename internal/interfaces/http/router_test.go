package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ganaderia-api/internal/application/auth"
	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Ganaderia-api/internal/interfaces/http"
)

type failingDetails struct {
	repository.ExitDetailRepository
}

func (failingDetails) ListByCause(context.Context, entity.ExitCause) ([]*entity.ExitDetailEntry, error) {
	return nil, io.ErrUnexpectedEOF
}

// buildAPI arma la API completa sobre el almacén en memoria.
func buildAPI(t *testing.T, s *memory.Store, details repository.ExitDetailRepository) *fiber.App {
	t.Helper()
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil).
		WithBcryptCost(bcrypt.MinCost)
	report := livestock.NewSalesReportUseCase(s.MovementRecords(), details, livestock.SalesReportOptions{}, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		MovementUC:     livestock.NewMovementUseCase(s.MovementRecords(), nil),
		ExitReasonsUC:  livestock.NewExitReasonsUseCase(s, s.ExitDetails(), nil),
		SalesReport:    report,
		SalesReportPDF: livestock.NewSalesReportPDFUseCase(report, pdf.NewSalesReportGenerator()),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_FlujoCompleto(t *testing.T) {
	s := memory.NewStore()
	app := buildAPI(t, s, s.ExitDetails())
	admin := tokenFor(t, entity.RoleAdmin, "")

	resp := call(t, app, http.MethodPost, "/api/movements", admin, dto.CreateMovementRequest{
		Member: "A", Date: "2024-01-10", Entries: 50, Exits: 10,
		PricePerKg: decimal.NewFromInt(2), TotalKg: decimal.NewFromInt(500),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.MovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	resp.Body.Close()
	assert.True(t, rec.Total.Equal(decimal.NewFromInt(1000)))

	resp = call(t, app, http.MethodPost, "/api/movements/"+rec.ID+"/exit-reasons", admin, dto.RegisterExitReasonsRequest{
		Reasons: []dto.ExitReasonInput{{Cause: "ventas", Quantity: 10, PricePerKg: decimal.NewFromInt(2), TotalKg: decimal.NewFromInt(500)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/reports/sales?member=A", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report dto.SalesReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()

	require.Len(t, report.Rows, 1)
	assert.Equal(t, 50, report.Rows[0].CumulativeInflow)
	assert.True(t, report.Rows[0].PctMajor.Equal(decimal.NewFromInt(600)))
	assert.True(t, report.Rows[0].PctMinor.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 40, report.Rows[0].CurrentInventory)

	resp = call(t, app, http.MethodGet, "/api/reports/sales/pdf", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAPI_RepartoQueNoCuadra(t *testing.T) {
	s := memory.NewStore()
	app := buildAPI(t, s, s.ExitDetails())
	admin := tokenFor(t, entity.RoleAdmin, "")
	require.NoError(t, s.MovementRecords().Create(context.Background(), &entity.MovementRecord{ID: "r1", Member: "A", Date: "2024-01-10", Exits: 5}))

	resp := call(t, app, http.MethodPost, "/api/movements/r1/exit-reasons", admin, dto.RegisterExitReasonsRequest{
		Reasons: []dto.ExitReasonInput{{Cause: "muerte", Quantity: 3}},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "EXITS_MISMATCH", body.Code)
	assert.Contains(t, body.Message, "(3)")
}

func TestAPI_SocioFijadoASuSocio(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	for _, r := range []*entity.MovementRecord{
		{ID: "a1", Member: "A", Date: "2024-01-10", Entries: 10, Exits: 1, Total: decimal.NewFromInt(100)},
		{ID: "b1", Member: "B", Date: "2024-01-10", Entries: 20, Exits: 2, Total: decimal.NewFromInt(200)},
	} {
		require.NoError(t, s.MovementRecords().Create(ctx, r))
		require.NoError(t, s.ExitDetails().CreateBatch(ctx, []*entity.ExitDetailEntry{{
			ID: r.ID + "-v", MovementRecordID: r.ID, Member: r.Member, Date: r.Date, Cause: entity.ExitCauseSale, Quantity: r.Exits,
		}}))
	}
	app := buildAPI(t, s, s.ExitDetails())
	socio := tokenFor(t, entity.RoleSocio, "A")

	resp := call(t, app, http.MethodGet, "/api/reports/sales", socio, nil)
	var report dto.SalesReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "A", report.Rows[0].Member)

	resp = call(t, app, http.MethodGet, "/api/reports/sales?member=B", socio, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/movements/b1", socio, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/movements", socio, dto.CreateMovementRequest{Member: "A", Date: "2024-01-11"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin escribe")
}

func TestAPI_FallaDeLecturaEs502(t *testing.T) {
	s := memory.NewStore()
	app := buildAPI(t, s, failingDetails{s.ExitDetails()})

	resp := call(t, app, http.MethodGet, "/api/reports/sales", tokenFor(t, entity.RoleAdmin, ""), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FETCH_FAILED", body.Code)
}

func TestAPI_PDFNombreDeArchivoSeguro(t *testing.T) {
	s := memory.NewStore()
	app := buildAPI(t, s, s.ExitDetails())

	resp := call(t, app, http.MethodGet, "/api/reports/sales/pdf?member="+url.QueryEscape(`José "Toro"`), tokenFor(t, entity.RoleAdmin, ""), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		`attachment; filename="ventas-jos_-toro.pdf"; filename*=UTF-8''ventas-jos%C3%A9-%22toro%22.pdf`,
		resp.Header.Get("Content-Disposition"))
}

func TestAPI_Login(t *testing.T) {
	s := memory.NewStore()
	app := buildAPI(t, s, s.ExitDetails())
	admin := tokenFor(t, entity.RoleAdmin, "")

	resp := call(t, app, http.MethodPost, "/api/auth/register", admin, dto.RegisterRequest{
		Email: "socio@finca.co", Password: "12345678", Member: "A",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "socio@finca.co", Password: "12345678"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "A", out.User.Member)

	bad := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "socio@finca.co", Password: "malo"})
	defer bad.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
}
