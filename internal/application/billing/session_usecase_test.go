package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID      = "co-1"
	otherCompanyID = "co-2"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCompany(roundTotals bool) *entity.Company {
	return &entity.Company{
		ID:          companyID,
		Name:        "Comercial La Rebaja S.A.S.",
		TaxID:       "900123456-7",
		RoundTotals: roundTotals,
	}
}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:        "prod-1",
		CompanyID: companyID,
		SKU:       "CAF-500",
		Name:      "Café 500g",
		Price:     dec("100"),
		TaxRate:   dec("18"),
	}
}

func testCustomer() *entity.Customer {
	return &entity.Customer{
		ID:        "cust-1",
		CompanyID: companyID,
		Name:      "Carlos Pérez",
		TaxID:     "1020304050",
	}
}

func newSessionUC(company *entity.Company, invoiceRepo *fakeInvoiceRepo) *billing.SessionUseCase {
	return billing.NewSessionUseCase(
		newFakeProductRepo(testProduct()),
		newFakeCustomerRepo(testCustomer()),
		newFakeCompanyRepo(company),
		invoiceRepo,
	)
}

func eqMoney(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "%s: esperaba %s, fue %s", msg, expected, actual)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_StartHeredaPreferenciaDeRedondeo(t *testing.T) {
	uc := newSessionUC(testCompany(true), newFakeInvoiceRepo())

	s, err := uc.Start(companyID, dto.StartSessionRequest{})
	require.NoError(t, err)

	assert.True(t, s.RoundTotals, "el borrador nuevo hereda round_totals de la empresa")
	assert.Empty(t, s.Items)
	eqMoney(t, "0", s.Totals.GrandTotal, "grand_total inicial")
}

func TestSession_StartEmpresaInexistente(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())

	_, err := uc.Start("no-existe", dto.StartSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_AgregarLineaConDescuento(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, err := uc.Start(companyID, dto.StartSessionRequest{})
	require.NoError(t, err)

	s, err = uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, s.Items, 1)

	disc := dec("10")
	s, err = uc.UpdateItem(companyID, s.ID, s.Items[0].ID, dto.UpdateItemRequest{DiscountPercent: &disc})
	require.NoError(t, err)

	// 2 × 100 = 200; −10% = 180; IVA 18% = 32.40; total 212.40
	eqMoney(t, "200", s.Totals.SubtotalGross, "subtotal bruto")
	eqMoney(t, "20", s.Totals.TotalDiscount, "descuento")
	eqMoney(t, "180", s.Totals.TaxableAmount, "base gravable")
	eqMoney(t, "32.40", s.Totals.TotalTax, "impuestos")
	eqMoney(t, "212.40", s.Totals.GrandTotal, "total")
	require.Len(t, s.Totals.TaxBreakdown, 1)
	eqMoney(t, "18", s.Totals.TaxBreakdown[0].Rate, "tasa del grupo")
}

func TestSession_AgregarMismoProductoFusionaLinea(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})

	s, err := uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	s, err = uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, s.Items, 1, "mismo producto no duplica línea")
	assert.Equal(t, int64(3), s.Items[0].Quantity)
}

func TestSession_AgregarProductoDeOtraEmpresa(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})

	_, err := uc.AddItem(otherCompanyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSession_CantidadInvalidaNoAlteraLinea(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})
	s, err := uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	qty := int64(0)
	s, err = uc.UpdateItem(companyID, s.ID, s.Items[0].ID, dto.UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err, "cantidad < 1 se ignora en silencio")
	assert.Equal(t, int64(2), s.Items[0].Quantity)
}

func TestSession_QuitarLineaResetTotales(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})
	s, err := uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	s, err = uc.RemoveItem(companyID, s.ID, s.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, s.Items)
	eqMoney(t, "0", s.Totals.GrandTotal, "total tras vaciar el borrador")

	// Quitar una línea inexistente no es error.
	_, err = uc.RemoveItem(companyID, s.ID, "no-existe")
	assert.NoError(t, err)
}

func TestSession_SeleccionarClienteDeOtraEmpresa(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})

	_, err := uc.SelectCustomer(otherCompanyID, s.ID, "cust-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSession_RedondeoDelTotal(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})
	s, err := uc.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	disc := dec("10")
	s, err = uc.UpdateItem(companyID, s.ID, s.Items[0].ID, dto.UpdateItemRequest{DiscountPercent: &disc})
	require.NoError(t, err)

	s, err = uc.SetRoundTotals(companyID, s.ID, true)
	require.NoError(t, err)

	// 212.40 → 212, ajuste −0.40
	eqMoney(t, "-0.40", s.Totals.RoundOff, "ajuste de redondeo")
	eqMoney(t, "212", s.Totals.GrandTotal, "total redondeado")

	s, err = uc.SetRoundTotals(companyID, s.ID, false)
	require.NoError(t, err)
	eqMoney(t, "0", s.Totals.RoundOff, "sin redondeo el ajuste vuelve a cero")
	eqMoney(t, "212.40", s.Totals.GrandTotal, "total sin redondear")
}

func TestSession_DescartarTerminaLaSesion(t *testing.T) {
	uc := newSessionUC(testCompany(false), newFakeInvoiceRepo())
	s, _ := uc.Start(companyID, dto.StartSessionRequest{})

	uc.Discard(companyID, s.ID)
	_, err := uc.Get(companyID, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Descartar dos veces no es error.
	uc.Discard(companyID, s.ID)
}

func TestSession_EditarFacturaGuardadaReconstruyeBorrador(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	now := time.Now()
	inv := &entity.Invoice{
		ID:        "inv-1",
		CompanyID: companyID,
		Number:    "FV-2026-000001",
		Date:      now,
		RoundOff:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, invoiceRepo.Create(inv))
	require.NoError(t, invoiceRepo.CreateDetail(&entity.InvoiceDetail{
		ID:              "det-1",
		InvoiceID:       "inv-1",
		ProductID:       "prod-1",
		ProductName:     "Café 500g",
		SKU:             "CAF-500",
		Quantity:        2,
		UnitPrice:       dec("100"),
		DiscountPercent: dec("10"),
		TaxRate:         dec("18"),
	}))

	uc := newSessionUC(testCompany(false), invoiceRepo)
	s, err := uc.Start(companyID, dto.StartSessionRequest{InvoiceID: "inv-1"})
	require.NoError(t, err)

	assert.Equal(t, "inv-1", s.InvoiceID)
	require.Len(t, s.Items, 1)
	assert.Equal(t, int64(2), s.Items[0].Quantity)
	eqMoney(t, "10", s.Items[0].DiscountPercent, "descuento reconstruido")
	// El borrador reconstruido recalcula igual que el original.
	eqMoney(t, "212.40", s.Totals.GrandTotal, "total de la factura reabierta")
}

func TestSession_EditarFacturaDeOtraEmpresa(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	require.NoError(t, invoiceRepo.Create(&entity.Invoice{ID: "inv-ajena", CompanyID: otherCompanyID}))

	uc := newSessionUC(testCompany(false), invoiceRepo)
	_, err := uc.Start(companyID, dto.StartSessionRequest{InvoiceID: "inv-ajena"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
