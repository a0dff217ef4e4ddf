// Package money centraliza la aritmética monetaria de la aplicación.
//
// Regla de redondeo: mitad hacia arriba ("round half-up") a 2 decimales,
// aplicada una sola vez al producir valores de presentación o persistencia.
// Los acumulados intermedios (sumas de líneas) se mantienen a precisión
// completa y se redondean en un único paso final, para no componer errores
// de redondeo línea a línea.
package money

import "github.com/shopspring/decimal"

// Hundred constante 100 para cálculos de porcentaje.
var Hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales con mitad hacia arriba.
// decimal.Round usa "half away from zero", que para montos no negativos
// equivale a half-up; los montos de esta aplicación nunca son negativos.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundUnit redondea a la unidad monetaria entera más cercana (para el ajuste
// de redondeo del total de la factura).
func RoundUnit(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// SafeDiv divide num/den devolviendo 0 si el denominador es cero.
// Nunca lanza panic ni produce un valor indefinido.
func SafeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Percent calcula base × pct / 100 a precisión completa.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(Hundred)
}

// ClampPercent restringe un porcentaje al rango [0, 100].
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if pct.GreaterThan(Hundred) {
		return Hundred
	}
	return pct
}
