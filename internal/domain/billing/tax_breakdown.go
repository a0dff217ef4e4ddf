package billing

import "github.com/shopspring/decimal"

// TaxGroup acumula el impuesto de las líneas que comparten una misma tasa.
type TaxGroup struct {
	Rate      decimal.Decimal // porcentaje
	Amount    decimal.Decimal // Σ impuesto de las líneas del grupo (precisión completa)
	LineCount int
}

// taxBreakdown agrupa las líneas por tasa de impuesto y suma el impuesto de
// cada grupo. Las tasas 0 se agrupan igual que el resto; la capa de
// presentación decide si las muestra. El orden del resultado no es
// significativo: compararlo como conjunto de tuplas (tasa, monto, conteo).
func taxBreakdown(items []*LineItem) []TaxGroup {
	idx := make(map[string]int, len(items))
	groups := make([]TaxGroup, 0, len(items))
	for _, li := range items {
		key := li.TaxRate.String()
		i, ok := idx[key]
		if !ok {
			idx[key] = len(groups)
			groups = append(groups, TaxGroup{Rate: li.TaxRate, Amount: decimal.Zero})
			i = len(groups) - 1
		}
		groups[i].Amount = groups[i].Amount.Add(li.TaxAmount)
		groups[i].LineCount++
	}
	return groups
}
