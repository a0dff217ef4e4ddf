package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y medios de pago de una factura.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPending = "PENDING"

	PaymentModeCash     = "cash"
	PaymentModeCard     = "card"
	PaymentModeTransfer = "transfer"
	PaymentModeOther    = "other"
)

// Invoice representa la cabecera de una factura emitida.
// Los totales son los calculados por el motor de facturación al momento del
// envío; se persisten redondeados a 2 decimales.
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Number        string
	Date          time.Time
	SubtotalGross decimal.Decimal // Σ bruto de líneas, antes de descuentos
	TotalDiscount decimal.Decimal // Σ descuentos de líneas
	TaxableAmount decimal.Decimal // base gravable: bruto − descuentos
	TotalTax      decimal.Decimal // Σ impuestos de líneas
	RoundOff      decimal.Decimal // ajuste a unidad entera (0 si está desactivado)
	GrandTotal    decimal.Decimal // base + impuestos + ajuste
	PaymentStatus string          // PAID | PENDING
	PaymentMode   string          // cash, card, transfer, other
	PaymentRef    string          // referencia del pago (UTR de la transferencia)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
