package salesreport_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/salesreport"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func sale(member, date string, qty int) *entity.ExitDetailEntry {
	return &entity.ExitDetailEntry{Member: member, Date: date, Cause: entity.ExitCauseSale, Quantity: qty}
}

func exit(member, date string, cause entity.ExitCause, qty int) *entity.ExitDetailEntry {
	return &entity.ExitDetailEntry{Member: member, Date: date, Cause: cause, Quantity: qty}
}

func record(member, date string, entries, exits int, total string) *entity.MovementRecord {
	return &entity.MovementRecord{
		Member:  member,
		Date:    date,
		Entries: entries,
		Exits:   exits,
		Total:   decimal.RequireFromString(total),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AggregateSales
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateSales_AgrupaPorSocioYFecha(t *testing.T) {
	entries := []*entity.ExitDetailEntry{
		sale("A", "2024-01-10", 4),
		sale("A", "2024-01-10", 6),
		sale("A", "2024-01-11", 2),
		sale("B", "2024-01-10", 3),
		exit("A", "2024-01-10", entity.ExitCauseDeath, 9),
		sale("B", "2024-01-12", 0),
		nil,
	}

	got := salesreport.AggregateSales(entries)

	want := map[salesreport.SaleKey]salesreport.SaleAggregate{
		{Member: "A", Date: "2024-01-10"}: {Member: "A", Date: "2024-01-10", TotalSaleQuantity: 10},
		{Member: "A", Date: "2024-01-11"}: {Member: "A", Date: "2024-01-11", TotalSaleQuantity: 2},
		{Member: "B", Date: "2024-01-10"}: {Member: "B", Date: "2024-01-10", TotalSaleQuantity: 3},
		{Member: "B", Date: "2024-01-12"}: {Member: "B", Date: "2024-01-12", TotalSaleQuantity: 0},
	}
	assert.Equal(t, want, got, "solo ventas, una entrada por (socio, fecha) distinto")
}

func TestAggregateSales_IndependienteDelOrden(t *testing.T) {
	entries := []*entity.ExitDetailEntry{
		sale("A", "2024-01-10", 4),
		sale("A", "2024-01-10", 6),
		sale("B", "2024-02-01", 1),
		sale("C", "2024-03-05", 7),
		sale("B", "2024-02-01", 5),
		exit("C", "2024-03-05", entity.ExitCauseTheft, 2),
	}
	base := salesreport.AggregateSales(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]*entity.ExitDetailEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, base, salesreport.AggregateSales(shuffled))
	}
}

func TestAggregateSales_FechaSinNormalizar(t *testing.T) {
	got := salesreport.AggregateSales([]*entity.ExitDetailEntry{
		sale("A", "2024-01-10", 1),
		sale("A", "2024-01-10T00:00:00", 1),
	})
	assert.Len(t, got, 2, "la clave compara la fecha como string exacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_EscenarioBasico(t *testing.T) {
	records := []*entity.MovementRecord{record("A", "2024-01-10", 50, 10, "1000")}
	details := []*entity.ExitDetailEntry{sale("A", "2024-01-10", 10)}

	res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "")

	require.Len(t, res.Rows, 1)
	assert.Empty(t, res.Dropped)
	row := res.Rows[0]
	assert.Equal(t, "A", row.Member)
	assert.Equal(t, "2024-01-10", row.Date)
	assert.Equal(t, 50, row.CumulativeInflow)
	assert.Equal(t, 10, row.SaleQuantity)
	assert.True(t, row.PctMajor.Equal(decimal.NewFromInt(600)), "60%% de 1000, got %s", row.PctMajor)
	assert.True(t, row.PctMinor.Equal(decimal.NewFromInt(400)), "40%% de 1000, got %s", row.PctMinor)
	assert.Equal(t, 40, row.CurrentInventory)
}

func TestReconcile_OmiteAgregadoSinRegistroExacto(t *testing.T) {
	records := []*entity.MovementRecord{
		record("A", "2024-01-09", 30, 0, "0"),
		record("A", "2024-01-11", 0, 5, "500"),
	}
	details := []*entity.ExitDetailEntry{
		sale("A", "2024-01-10", 5),
		sale("A", "2024-01-11", 5),
	}

	res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "")

	require.Len(t, res.Rows, 1)
	assert.Equal(t, "2024-01-11", res.Rows[0].Date)
	assert.Equal(t, []salesreport.SaleKey{{Member: "A", Date: "2024-01-10"}}, res.Dropped,
		"el agregado sin registro del mismo día se omite y se reporta")
}

func TestReconcile_InventarioAcumuladoNoDecrece(t *testing.T) {
	records := []*entity.MovementRecord{
		record("A", "2024-03-01", 5, 2, "200"),
		record("A", "2024-01-01", 40, 0, "0"),
		record("A", "2024-02-01", 0, 10, "900"),
		record("B", "2024-02-01", 100, 0, "0"),
	}
	details := []*entity.ExitDetailEntry{
		sale("A", "2024-01-01", 0),
		sale("A", "2024-02-01", 10),
		sale("A", "2024-03-01", 2),
	}

	res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "A")
	require.Len(t, res.Rows, 3)

	// filas en orden descendente por fecha
	assert.Equal(t, []string{"2024-03-01", "2024-02-01", "2024-01-01"},
		[]string{res.Rows[0].Date, res.Rows[1].Date, res.Rows[2].Date})

	for i := 0; i < len(res.Rows)-1; i++ {
		assert.GreaterOrEqual(t, res.Rows[i].CumulativeInflow, res.Rows[i+1].CumulativeInflow)
	}
	assert.Equal(t, 45, res.Rows[0].CumulativeInflow, "no suma entradas de otros socios")
	assert.Equal(t, 33, res.Rows[0].CurrentInventory)
	assert.Equal(t, 30, res.Rows[1].CurrentInventory)
}

func TestReconcile_RepartoSumaElTotal(t *testing.T) {
	totals := []string{"0", "1", "1000", "1234567.89", "0.03", "999999999.99"}
	for _, total := range totals {
		t.Run(total, func(t *testing.T) {
			records := []*entity.MovementRecord{record("A", "2024-05-05", 1, 1, total)}
			details := []*entity.ExitDetailEntry{sale("A", "2024-05-05", 1)}
			res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "")
			require.Len(t, res.Rows, 1)
			row := res.Rows[0]
			assert.True(t, row.PctMajor.Add(row.PctMinor).Equal(row.Total),
				"%s + %s debe ser %s", row.PctMajor, row.PctMinor, row.Total)
		})
	}
}

func TestReconcile_FiltroPorSocio(t *testing.T) {
	records := []*entity.MovementRecord{
		record("A", "2024-01-10", 10, 1, "100"),
		record("B", "2024-01-10", 20, 2, "200"),
	}
	details := []*entity.ExitDetailEntry{sale("A", "2024-01-10", 1), sale("B", "2024-01-10", 2)}
	aggs := salesreport.AggregateSales(details)

	res := salesreport.Reconcile(aggs, records, details, "A")
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A", res.Rows[0].Member)

	all := salesreport.Reconcile(aggs, records, details, "")
	require.Len(t, all.Rows, 2)
	assert.Equal(t, "A", all.Rows[0].Member, "en empate de fecha el orden es por socio")
	assert.Equal(t, "B", all.Rows[1].Member)
}

func TestReconcile_CuentaMuertesYRobos(t *testing.T) {
	records := []*entity.MovementRecord{record("A", "2024-01-10", 10, 6, "300")}
	details := []*entity.ExitDetailEntry{
		sale("A", "2024-01-10", 3),
		exit("A", "2024-01-10", entity.ExitCauseDeath, 2),
		exit("A", "2024-01-10", entity.ExitCauseTheft, 1),
		exit("A", "2024-01-11", entity.ExitCauseTheft, 4),
	}

	res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "")
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 3, res.Rows[0].SaleQuantity)
	assert.Equal(t, 2, res.Rows[0].DeathCount)
	assert.Equal(t, 1, res.Rows[0].TheftCount)
}

func TestReconcile_InventarioNegativoNoEsError(t *testing.T) {
	records := []*entity.MovementRecord{record("A", "2024-01-10", 0, 7, "700")}
	details := []*entity.ExitDetailEntry{sale("A", "2024-01-10", 7)}

	res := salesreport.Reconcile(salesreport.AggregateSales(details), records, details, "")
	require.Len(t, res.Rows, 1)
	assert.Equal(t, -7, res.Rows[0].CurrentInventory)
}

func TestReconcile_PreciosDelRegistroNoDelDetalle(t *testing.T) {
	rec := record("A", "2024-01-10", 5, 5, "2500")
	rec.PricePerKg = decimal.NewFromInt(5)
	rec.TotalKg = decimal.NewFromInt(500)
	detail := sale("A", "2024-01-10", 5)
	detail.PricePerKg = decimal.NewFromInt(99)
	detail.TotalKg = decimal.NewFromInt(1)

	details := []*entity.ExitDetailEntry{detail}
	res := salesreport.Reconcile(salesreport.AggregateSales(details), []*entity.MovementRecord{rec}, details, "")
	require.Len(t, res.Rows, 1)
	assert.True(t, res.Rows[0].PricePerKg.Equal(decimal.NewFromInt(5)))
	assert.True(t, res.Rows[0].TotalKg.Equal(decimal.NewFromInt(500)))
}

func TestReconcile_SinAgregadosDevuelveVacio(t *testing.T) {
	res := salesreport.Reconcile(salesreport.AggregateSales(nil), []*entity.MovementRecord{record("A", "2024-01-10", 5, 0, "0")}, nil, "")
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Dropped)
}
