package repository

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	DeleteDetailsByInvoiceID(invoiceID string) error
	NextNumber(companyID string, date time.Time) (string, error)
}
