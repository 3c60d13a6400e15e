// Package salesreport contiene la lógica pura del reporte de ventas:
// agregación de salidas por venta y conciliación contra los registros de movimiento.
// No accede a ningún almacén; recibe los datos ya cargados.
package salesreport

import "github.com/jhoicas/Ganaderia-api/internal/domain/entity"

// SaleKey clave compuesta (socio, fecha). La igualdad es exacta sobre los strings.
type SaleKey struct {
	Member string
	Date   string
}

// SaleAggregate cantidad vendida acumulada para un (socio, fecha).
type SaleAggregate struct {
	Member            string
	Date              string
	TotalSaleQuantity int
}

// AggregateSales agrupa las salidas con causa venta por (socio, fecha) y suma sus cantidades.
// Las demás causas se ignoran; las cantidades en cero cuentan (como cero).
func AggregateSales(entries []*entity.ExitDetailEntry) map[SaleKey]SaleAggregate {
	out := make(map[SaleKey]SaleAggregate)
	for _, e := range entries {
		if e == nil || e.Cause != entity.ExitCauseSale {
			continue
		}
		key := SaleKey{Member: e.Member, Date: e.Date}
		agg, ok := out[key]
		if !ok {
			agg = SaleAggregate{Member: e.Member, Date: e.Date}
		}
		agg.TotalSaleQuantity += e.Quantity
		out[key] = agg
	}
	return out
}
