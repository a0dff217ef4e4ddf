package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// fakeTxRunner ejecuta el callback directo contra el repo en memoria, sin
// transacción real.
type fakeTxRunner struct {
	invoiceRepo repository.InvoiceRepository
}

func (f *fakeTxRunner) RunBilling(_ context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return fn(f.invoiceRepo)
}

func newSubmitFixture(t *testing.T) (*billing.SessionUseCase, *billing.SubmitInvoiceUseCase, *fakeInvoiceRepo) {
	t.Helper()
	invoiceRepo := newFakeInvoiceRepo()
	customerRepo := newFakeCustomerRepo(testCustomer())
	companyRepo := newFakeCompanyRepo(testCompany(false))
	sessions := billing.NewSessionUseCase(newFakeProductRepo(testProduct()), customerRepo, companyRepo, invoiceRepo)
	submit := billing.NewSubmitInvoiceUseCase(&fakeTxRunner{invoiceRepo: invoiceRepo}, sessions, customerRepo, companyRepo, invoiceRepo)
	return sessions, submit, invoiceRepo
}

func TestSubmit_EmiteFacturaYTerminaLaSesion(t *testing.T) {
	sessions, submit, invoiceRepo := newSubmitFixture(t)

	s, err := sessions.Start(companyID, dto.StartSessionRequest{})
	require.NoError(t, err)
	s, err = sessions.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	disc := dec("10")
	s, err = sessions.UpdateItem(companyID, s.ID, s.Items[0].ID, dto.UpdateItemRequest{DiscountPercent: &disc})
	require.NoError(t, err)
	_, err = sessions.SelectCustomer(companyID, s.ID, "cust-1")
	require.NoError(t, err)

	inv, err := submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{
		PaymentStatus: entity.PaymentStatusPaid,
		PaymentMode:   entity.PaymentModeCash,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^FV-\d{4}-000001$`, inv.Number, "consecutivo con formato FV-año-NNNNNN")
	eqMoney(t, "200", inv.SubtotalGross, "subtotal bruto persistido")
	eqMoney(t, "20", inv.TotalDiscount, "descuento persistido")
	eqMoney(t, "180", inv.TaxableAmount, "base gravable persistida")
	eqMoney(t, "32.40", inv.TotalTax, "impuestos persistidos")
	eqMoney(t, "212.40", inv.GrandTotal, "total persistido")
	assert.Equal(t, entity.PaymentStatusPaid, inv.PaymentStatus)
	assert.Equal(t, "Carlos Pérez", inv.CustomerName)
	require.Len(t, inv.Details, 1)
	assert.Equal(t, int64(2), inv.Details[0].Quantity)

	// La sesión queda terminada.
	_, err = sessions.Get(companyID, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La factura quedó persistida con su detalle.
	stored, err := invoiceRepo.GetByID(inv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	details, err := invoiceRepo.GetDetailsByInvoiceID(inv.ID)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

func TestSubmit_SinEstadoDePagoQuedaPendiente(t *testing.T) {
	sessions, submit, _ := newSubmitFixture(t)

	s, _ := sessions.Start(companyID, dto.StartSessionRequest{})
	_, err := sessions.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	_, err = sessions.SelectCustomer(companyID, s.ID, "cust-1")
	require.NoError(t, err)

	inv, err := submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, inv.PaymentStatus, "sin estado explícito queda PENDING")
}

func TestSubmit_BorradorVacio(t *testing.T) {
	sessions, submit, _ := newSubmitFixture(t)

	s, _ := sessions.Start(companyID, dto.StartSessionRequest{})
	_, err := sessions.SelectCustomer(companyID, s.ID, "cust-1")
	require.NoError(t, err)

	_, err = submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)

	// La sesión sobrevive al fallo de precondición.
	_, err = sessions.Get(companyID, s.ID)
	assert.NoError(t, err)
}

func TestSubmit_SinCliente(t *testing.T) {
	sessions, submit, _ := newSubmitFixture(t)

	s, _ := sessions.Start(companyID, dto.StartSessionRequest{})
	_, err := sessions.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)

	_, err = submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingCustomer)
}

func TestSubmit_EstadoDePagoInvalido(t *testing.T) {
	sessions, submit, _ := newSubmitFixture(t)
	s, _ := sessions.Start(companyID, dto.StartSessionRequest{})

	_, err := submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{PaymentStatus: "CANCELLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_ReemitirFacturaConservaNumero(t *testing.T) {
	sessions, submit, invoiceRepo := newSubmitFixture(t)

	// Primera emisión.
	s, _ := sessions.Start(companyID, dto.StartSessionRequest{})
	_, err := sessions.AddItem(companyID, s.ID, dto.AddItemRequest{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	_, err = sessions.SelectCustomer(companyID, s.ID, "cust-1")
	require.NoError(t, err)
	first, err := submit.Submit(context.Background(), companyID, s.ID, dto.SubmitInvoiceRequest{})
	require.NoError(t, err)

	// Reabrir y cambiar la cantidad.
	s2, err := sessions.Start(companyID, dto.StartSessionRequest{InvoiceID: first.ID})
	require.NoError(t, err)
	qty := int64(5)
	s2, err = sessions.UpdateItem(companyID, s2.ID, s2.Items[0].ID, dto.UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err)
	second, err := submit.Submit(context.Background(), companyID, s2.ID, dto.SubmitInvoiceRequest{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-emitir no crea otra factura")
	assert.Equal(t, first.Number, second.Number, "el consecutivo no cambia al re-emitir")
	eqMoney(t, "590", second.GrandTotal, "5 × 100 + IVA 18%")

	details, err := invoiceRepo.GetDetailsByInvoiceID(first.ID)
	require.NoError(t, err)
	require.Len(t, details, 1, "las líneas se reemplazan, no se acumulan")
	assert.Equal(t, int64(5), details[0].Quantity)
}
