package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, customer_id, number, date,
			subtotal_gross, total_discount, taxable_amount, total_tax, round_off, grand_total,
			payment_status, payment_mode, payment_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, nullIfEmpty(invoice.CustomerID), invoice.Number, invoice.Date,
		invoice.SubtotalGross, invoice.TotalDiscount, invoice.TaxableAmount, invoice.TotalTax,
		invoice.RoundOff, invoice.GrandTotal,
		invoice.PaymentStatus, invoice.PaymentMode, nullIfEmpty(invoice.PaymentRef),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle (copia del producto al facturar).
func (r *InvoiceRepo) CreateDetail(detail *entity.InvoiceDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, product_name, sku, quantity,
			unit_price, gross_amount, discount_percent, discount_amount,
			tax_rate, tax_inclusive, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.InvoiceID, detail.ProductID, detail.ProductName, detail.SKU, detail.Quantity,
		detail.UnitPrice, detail.GrossAmount, detail.DiscountPercent, detail.DiscountAmount,
		detail.TaxRate, detail.TaxInclusive, detail.TaxAmount, detail.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id, ''), number, date,
		       subtotal_gross, total_discount, taxable_amount, total_tax, round_off, grand_total,
		       payment_status, payment_mode, COALESCE(payment_ref, ''),
		       created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Date,
		&inv.SubtotalGross, &inv.TotalDiscount, &inv.TaxableAmount, &inv.TotalTax,
		&inv.RoundOff, &inv.GrandTotal,
		&inv.PaymentStatus, &inv.PaymentMode, &inv.PaymentRef,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetDetailsByInvoiceID obtiene todas las líneas de una factura.
func (r *InvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, product_name, sku, quantity,
		       unit_price, gross_amount, discount_percent, discount_amount,
		       tax_rate, tax_inclusive, tax_amount, line_total
		FROM invoice_details WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.ProductName, &d.SKU, &d.Quantity,
			&d.UnitPrice, &d.GrossAmount, &d.DiscountPercent, &d.DiscountAmount,
			&d.TaxRate, &d.TaxInclusive, &d.TaxAmount, &d.LineTotal); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByCompany lista facturas por empresa, de la más reciente a la más antigua.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id, ''), number, date,
		       subtotal_gross, total_discount, taxable_amount, total_tax, round_off, grand_total,
		       payment_status, payment_mode, COALESCE(payment_ref, ''),
		       created_at, updated_at
		FROM invoices WHERE company_id = $1 ORDER BY date DESC, number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Date,
			&inv.SubtotalGross, &inv.TotalDiscount, &inv.TaxableAmount, &inv.TotalTax,
			&inv.RoundOff, &inv.GrandTotal,
			&inv.PaymentStatus, &inv.PaymentMode, &inv.PaymentRef,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update reemplaza la cabecera completa de una factura re-emitida.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id    = $2,
		    subtotal_gross = $3,
		    total_discount = $4,
		    taxable_amount = $5,
		    total_tax      = $6,
		    round_off      = $7,
		    grand_total    = $8,
		    payment_status = $9,
		    payment_mode   = $10,
		    payment_ref    = $11,
		    updated_at     = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID,
		nullIfEmpty(invoice.CustomerID),
		invoice.SubtotalGross, invoice.TotalDiscount, invoice.TaxableAmount,
		invoice.TotalTax, invoice.RoundOff, invoice.GrandTotal,
		invoice.PaymentStatus, invoice.PaymentMode, nullIfEmpty(invoice.PaymentRef),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteDetailsByInvoiceID borra las líneas de una factura (antes de re-insertarlas al re-emitir).
func (r *InvoiceRepo) DeleteDetailsByInvoiceID(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_details WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice details: %w", err)
	}
	return nil
}

// NextNumber genera el siguiente consecutivo de la empresa para el año de la fecha,
// con formato FV-<año>-NNNNNN. Debe llamarse dentro de la transacción de emisión:
// el SELECT y el INSERT posterior comparten snapshot y el índice único sobre
// (company_id, number) ataja cualquier carrera restante.
func (r *InvoiceRepo) NextNumber(companyID string, date time.Time) (string, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE company_id = $1 AND date_part('year', date) = $2`,
		companyID, date.Year(),
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("FV-%d-%06d", date.Year(), count+1), nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
