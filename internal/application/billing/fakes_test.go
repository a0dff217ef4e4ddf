package billing_test

import (
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SearchByName(companyID, query string, limit int) ([]*entity.Product, error) {
	return f.ListByCompany(companyID, limit, 0)
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	f := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		f.customers[c.ID] = c
	}
	return f
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	f := &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, c := range companies {
		f.companies[c.ID] = c
	}
	return f
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) Update(c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	details  map[string][]*entity.InvoiceDetail
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		details:  make(map[string][]*entity.InvoiceDetail),
	}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) CreateDetail(d *entity.InvoiceDetail) error {
	f.details[d.InvoiceID] = append(f.details[d.InvoiceID], d)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	return f.details[invoiceID], nil
}

func (f *fakeInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) DeleteDetailsByInvoiceID(invoiceID string) error {
	delete(f.details, invoiceID)
	return nil
}

func (f *fakeInvoiceRepo) NextNumber(companyID string, date time.Time) (string, error) {
	return fmt.Sprintf("FV-%d-%06d", date.Year(), len(f.invoices)+1), nil
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)
