package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de venta.
// Price y TaxRate se copian a la línea de factura al momento de agregarla:
// cambios posteriores del catálogo no alteran facturas en edición.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	TaxRate     decimal.Decimal // porcentaje de impuesto: 0, 5, 12, 18, 19...
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
