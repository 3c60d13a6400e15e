// Package format presenta montos, kilos y fechas como se muestran en Colombia.
// Los redondeos ocurren solo aquí; el cálculo trabaja con decimales completos.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Estados de inventario para resaltar en pantalla.
const (
	StatusPositive = "positive"
	StatusNegative = "negative"
)

const isoLayout = "2006-01-02"

// DisplayDateLayout fecha corta d/m/aaaa.
const DisplayDateLayout = "2/1/2006"

var titleCaser = cases.Title(language.LatinAmericanSpanish)

// Currency "$" + valor redondeado a la unidad con puntos de miles. Ej: 1234567.8 → "$1.234.568".
func Currency(d decimal.Decimal) string {
	return "$" + Grouped(d)
}

// Kilos valor redondeado a la unidad con sufijo " kg".
func Kilos(d decimal.Decimal) string {
	return Grouped(d) + " kg"
}

// Grouped redondea a entero e inserta puntos de miles.
func Grouped(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + groupThousands(s)
}

// Int entero con puntos de miles.
func Int(n int) string {
	return Grouped(decimal.NewFromInt(int64(n)))
}

// Date convierte "2024-01-10" en "10/1/2024". Si no es una fecha ISO la devuelve tal cual.
func Date(iso string) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayDateLayout)
}

// InventoryStatus el inventario negativo se marca, no es un error.
func InventoryStatus(current int) string {
	if current < 0 {
		return StatusNegative
	}
	return StatusPositive
}

// MemberName nombre del socio en forma de título: "finca la ESPERANZA" → "Finca La Esperanza".
func MemberName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
