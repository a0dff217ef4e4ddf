package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria (solo lo que el flujo de sesiones necesita)
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct{ byID map[string]*entity.Product }

func (m *memProductRepo) Create(p *entity.Product) error { m.byID[p.ID] = p; return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.byID[id], nil
}
func (m *memProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) SearchByName(companyID, q string, limit int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) Update(p *entity.Product) error { m.byID[p.ID] = p; return nil }

type memCustomerRepo struct{ byID map[string]*entity.Customer }

func (m *memCustomerRepo) Create(c *entity.Customer) error { m.byID[c.ID] = c; return nil }
func (m *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return m.byID[id], nil
}
func (m *memCustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	return nil, nil
}
func (m *memCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (m *memCustomerRepo) Update(c *entity.Customer) error { m.byID[c.ID] = c; return nil }

type memCompanyRepo struct{ byID map[string]*entity.Company }

func (m *memCompanyRepo) Create(c *entity.Company) error { m.byID[c.ID] = c; return nil }
func (m *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return m.byID[id], nil
}
func (m *memCompanyRepo) Update(c *entity.Company) error { m.byID[c.ID] = c; return nil }

type memInvoiceRepo struct {
	byID    map[string]*entity.Invoice
	details map[string][]*entity.InvoiceDetail
}

func (m *memInvoiceRepo) Create(inv *entity.Invoice) error { m.byID[inv.ID] = inv; return nil }
func (m *memInvoiceRepo) CreateDetail(d *entity.InvoiceDetail) error {
	m.details[d.InvoiceID] = append(m.details[d.InvoiceID], d)
	return nil
}
func (m *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) { return m.byID[id], nil }
func (m *memInvoiceRepo) GetDetailsByInvoiceID(id string) ([]*entity.InvoiceDetail, error) {
	return m.details[id], nil
}
func (m *memInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.byID {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (m *memInvoiceRepo) Update(inv *entity.Invoice) error { m.byID[inv.ID] = inv; return nil }
func (m *memInvoiceRepo) DeleteDetailsByInvoiceID(id string) error {
	delete(m.details, id)
	return nil
}
func (m *memInvoiceRepo) NextNumber(companyID string, date time.Time) (string, error) {
	return fmt.Sprintf("FV-%d-%06d", date.Year(), len(m.byID)+1), nil
}

type memTxRunner struct{ repo repository.InvoiceRepository }

func (m *memTxRunner) RunBilling(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(m.repo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app Fiber completa con las rutas reales
// ──────────────────────────────────────────────────────────────────────────────

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func buildBillingApp(t *testing.T) *fiber.App {
	t.Helper()

	productRepo := &memProductRepo{byID: map[string]*entity.Product{
		"prod-1": {
			ID: "prod-1", CompanyID: testCompanyID, SKU: "CAF-500",
			Name: "Café 500g", Price: mustDec("100"), TaxRate: mustDec("18"),
		},
	}}
	customerRepo := &memCustomerRepo{byID: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", CompanyID: testCompanyID, Name: "Carlos Pérez", TaxID: "1020304050"},
	}}
	companyRepo := &memCompanyRepo{byID: map[string]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "Comercial La Rebaja S.A.S.", TaxID: "900123456-7"},
	}}
	invoiceRepo := &memInvoiceRepo{
		byID:    make(map[string]*entity.Invoice),
		details: make(map[string][]*entity.InvoiceDetail),
	}

	sessionUC := billing.NewSessionUseCase(productRepo, customerRepo, companyRepo, invoiceRepo)
	submitUC := billing.NewSubmitInvoiceUseCase(&memTxRunner{repo: invoiceRepo}, sessionUC, customerRepo, companyRepo, invoiceRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:  usecase.NewCompanyUseCase(companyRepo),
		ProductUC:  usecase.NewProductUseCase(productRepo),
		CustomerUC: billing.NewCustomerUseCase(customerRepo),
		SessionUC:  sessionUC,
		SubmitUC:   submitUC,
		InvoiceUC:  billing.NewInvoiceQueryUseCase(invoiceRepo, customerRepo),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	if resp.Header.Get("Content-Type") != "" && resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	resp.Body.Close()
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo del punto de venta por HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestBillingSessions_FlujoCompleto(t *testing.T) {
	app := buildBillingApp(t)

	// 1. Abrir sesión
	resp, session := doJSON(t, app, http.MethodPost, "/api/billing/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID, _ := session["id"].(string)
	require.NotEmpty(t, sessionID)

	// 2. Agregar 2 unidades del producto
	resp, session = doJSON(t, app, http.MethodPost, "/api/billing/sessions/"+sessionID+"/items",
		map[string]any{"product_id": "prod-1", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := session["items"].([]any)
	require.Len(t, items, 1)
	itemID := items[0].(map[string]any)["id"].(string)

	// 3. Aplicar 10% de descuento a la línea
	resp, session = doJSON(t, app, http.MethodPatch, "/api/billing/sessions/"+sessionID+"/items/"+itemID,
		map[string]any{"discount_percent": "10"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := session["totals"].(map[string]any)
	assert.Equal(t, "180", totals["taxable_amount"], "base gravable tras el descuento")
	assert.Equal(t, "32.4", totals["total_tax"], "IVA 18% sobre la base")
	assert.Equal(t, "212.4", totals["grand_total"], "total de la pantalla")

	// 4. Fijar el cliente
	resp, _ = doJSON(t, app, http.MethodPut, "/api/billing/sessions/"+sessionID+"/customer",
		map[string]any{"customer_id": "cust-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 5. Emitir
	resp, invoice := doJSON(t, app, http.MethodPost, "/api/billing/sessions/"+sessionID+"/submit",
		map[string]any{"payment_status": "PAID", "payment_mode": "cash"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "212.4", invoice["grand_total"])
	assert.Equal(t, "PAID", invoice["payment_status"])
	assert.NotEmpty(t, invoice["number"])

	// 6. La sesión terminó: consultarla da 404
	resp, _ = doJSON(t, app, http.MethodGet, "/api/billing/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 7. La factura quedó consultable con su detalle
	invoiceID := invoice["id"].(string)
	resp, stored := doJSON(t, app, http.MethodGet, "/api/invoices/"+invoiceID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Carlos Pérez", stored["customer_name"])
	assert.Len(t, stored["details"].([]any), 1)
}

func TestBillingSessions_EmitirBorradorVacioDa422(t *testing.T) {
	app := buildBillingApp(t)

	resp, session := doJSON(t, app, http.MethodPost, "/api/billing/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := session["id"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/api/billing/sessions/"+sessionID+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "PRECONDITION", body["code"])
}

func TestBillingSessions_SesionInexistenteDa404(t *testing.T) {
	app := buildBillingApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/billing/sessions/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBillingSessions_SinTokenDa401(t *testing.T) {
	app := buildBillingApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/billing/sessions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
