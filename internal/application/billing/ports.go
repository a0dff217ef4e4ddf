package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción: cabecera y líneas de
// la factura se persisten juntas o no se persiste nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator produce la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, in PDFInput) ([]byte, error)
}
