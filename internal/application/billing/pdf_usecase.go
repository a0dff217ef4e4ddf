package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// PDFInput todo lo que el generador necesita para la representación gráfica.
type PDFInput struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Details  []*entity.InvoiceDetail
}

// PDFUseCase arma el contexto de una factura y delega en el generador.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// GenerateInvoicePDF genera el PDF de una factura guardada.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, err
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, PDFInput{
		Invoice:  inv,
		Company:  company,
		Customer: customer,
		Details:  details,
	})
}
