package salesreport

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// Reparto del total de la venta.
var (
	MajorShare = decimal.RequireFromString("0.6")
	MinorShare = decimal.RequireFromString("0.4")
)

// Row fila conciliada del reporte de ventas. Los montos no se redondean aquí.
type Row struct {
	Date             string
	Member           string
	CumulativeInflow int // entradas acumuladas del socio hasta la fecha (inclusive)
	SaleQuantity     int
	DeathCount       int
	TheftCount       int
	PricePerKg       decimal.Decimal
	TotalKg          decimal.Decimal
	Total            decimal.Decimal
	PctMajor         decimal.Decimal // Total * 0.6
	PctMinor         decimal.Decimal // Total * 0.4
	CurrentInventory int             // puede ser negativo
}

// Result filas del reporte más los agregados omitidos por no tener registro en su fecha exacta.
type Result struct {
	Rows    []Row
	Dropped []SaleKey
}

// memberLedger registros de un socio ordenados por fecha ascendente con acumulados.
type memberLedger struct {
	dates   []string
	inflow  []int // inflow[i] = suma de entradas de dates[0..i]
	outflow []int // outflow[i] = suma de salidas de dates[0..i]
}

// upTo devuelve los acumulados de entradas y salidas con fecha <= date.
func (l *memberLedger) upTo(date string) (inflow, outflow int) {
	n := sort.Search(len(l.dates), func(i int) bool { return l.dates[i] > date })
	if n == 0 {
		return 0, 0
	}
	return l.inflow[n-1], l.outflow[n-1]
}

// Reconcile produce una fila por agregado de venta, uniendo con el registro de la misma
// fecha exacta y calculando inventarios acumulados y el reparto 60/40.
//
// Reglas:
//   - memberFilter vacío = todos los socios.
//   - Sin registro para (socio, fecha) exacto el agregado se omite y se reporta en Dropped.
//   - Precio, kilos y total salen del registro de movimiento, no del detalle de salida.
//   - Muertes y robos se suman desde details para el mismo (socio, fecha).
//
// Las filas quedan ordenadas por fecha descendente y, en empate, por socio ascendente.
func Reconcile(
	aggregates map[SaleKey]SaleAggregate,
	records []*entity.MovementRecord,
	details []*entity.ExitDetailEntry,
	memberFilter string,
) Result {
	keys := make([]SaleKey, 0, len(aggregates))
	for k := range aggregates {
		if memberFilter != "" && k.Member != memberFilter {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date > keys[j].Date
		}
		return keys[i].Member < keys[j].Member
	})

	ledgers, byKey := indexRecords(records)
	deaths, thefts := countOtherCauses(details)

	res := Result{Rows: make([]Row, 0, len(keys))}
	for _, k := range keys {
		rec, ok := byKey[k]
		if !ok {
			res.Dropped = append(res.Dropped, k)
			continue
		}

		var inflow, outflow int
		if l := ledgers[k.Member]; l != nil {
			inflow, outflow = l.upTo(k.Date)
		}

		total := rec.Total
		res.Rows = append(res.Rows, Row{
			Date:             k.Date,
			Member:           k.Member,
			CumulativeInflow: inflow,
			SaleQuantity:     aggregates[k].TotalSaleQuantity,
			DeathCount:       deaths[k],
			TheftCount:       thefts[k],
			PricePerKg:       rec.PricePerKg,
			TotalKg:          rec.TotalKg,
			Total:            total,
			PctMajor:         total.Mul(MajorShare),
			PctMinor:         total.Mul(MinorShare),
			CurrentInventory: inflow - outflow,
		})
	}
	return res
}

// indexRecords arma el libro por socio y el índice exacto (socio, fecha).
// Si hay duplicados para un (socio, fecha) gana el primero en el orden recibido.
func indexRecords(records []*entity.MovementRecord) (map[string]*memberLedger, map[SaleKey]*entity.MovementRecord) {
	byMember := make(map[string][]*entity.MovementRecord)
	byKey := make(map[SaleKey]*entity.MovementRecord)
	for _, r := range records {
		if r == nil {
			continue
		}
		byMember[r.Member] = append(byMember[r.Member], r)
		k := SaleKey{Member: r.Member, Date: r.Date}
		if _, exists := byKey[k]; !exists {
			byKey[k] = r
		}
	}

	ledgers := make(map[string]*memberLedger, len(byMember))
	for member, list := range byMember {
		sorted := make([]*entity.MovementRecord, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

		l := &memberLedger{
			dates:   make([]string, len(sorted)),
			inflow:  make([]int, len(sorted)),
			outflow: make([]int, len(sorted)),
		}
		var in, out int
		for i, r := range sorted {
			in += r.Entries
			out += r.Exits
			l.dates[i] = r.Date
			l.inflow[i] = in
			l.outflow[i] = out
		}
		ledgers[member] = l
	}
	return ledgers, byKey
}

func countOtherCauses(details []*entity.ExitDetailEntry) (deaths, thefts map[SaleKey]int) {
	deaths = make(map[SaleKey]int)
	thefts = make(map[SaleKey]int)
	for _, d := range details {
		if d == nil {
			continue
		}
		k := SaleKey{Member: d.Member, Date: d.Date}
		switch d.Cause {
		case entity.ExitCauseDeath:
			deaths[k] += d.Quantity
		case entity.ExitCauseTheft:
			thefts[k] += d.Quantity
		}
	}
	return deaths, thefts
}
