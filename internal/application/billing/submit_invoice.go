package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// SubmitInvoiceUseCase convierte una sesión de edición en una factura
// persistida: construye el payload (con sus validaciones de precondición) y
// guarda cabecera más líneas en una sola transacción. Sirve tanto para el
// flujo de creación como para el de edición de una factura existente.
type SubmitInvoiceUseCase struct {
	txRunner     BillingTxRunner
	sessions     *SessionUseCase
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewSubmitInvoiceUseCase construye el caso de uso.
func NewSubmitInvoiceUseCase(
	txRunner BillingTxRunner,
	sessions *SessionUseCase,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
) *SubmitInvoiceUseCase {
	return &SubmitInvoiceUseCase{
		txRunner:     txRunner,
		sessions:     sessions,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Submit construye y persiste la factura de la sesión. Si todo sale bien la
// sesión queda terminada (se retira del registro). Los errores de
// precondición (borrador vacío, sin cliente, sin emisor) se devuelven al
// caller sin tocar la base de datos.
func (uc *SubmitInvoiceUseCase) Submit(ctx context.Context, companyID, sessionID string, in dto.SubmitInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !validPayment(in) {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.sessions.snapshot(companyID, sessionID)
	if err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	biller := domainbilling.BillerRef{}
	if company != nil {
		biller = domainbilling.BillerRef{ID: company.ID, Name: company.Name}
	}

	var customerRef domainbilling.CustomerRef
	var customer *entity.Customer
	if s.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(s.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		customerRef = domainbilling.CustomerRef{
			ID:           customer.ID,
			Name:         customer.Name,
			BusinessName: customer.BusinessName,
		}
	}

	payload, err := domainbilling.BuildPayload(s.Draft, customerRef, biller, domainbilling.PaymentInfo{
		Status: in.PaymentStatus,
		Mode:   in.PaymentMode,
		Ref:    in.PaymentRef,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var inv *entity.Invoice
	var details []*entity.InvoiceDetail

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if s.InvoiceID == "" {
			number, err := invoiceRepo.NextNumber(companyID, now)
			if err != nil {
				return err
			}
			inv = payloadToInvoice(payload, uuid.New().String(), companyID, number, now, now)
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
		} else {
			existing, err := invoiceRepo.GetByID(s.InvoiceID)
			if err != nil {
				return err
			}
			if existing == nil || existing.CompanyID != companyID {
				return domain.ErrNotFound
			}
			inv = payloadToInvoice(payload, existing.ID, companyID, existing.Number, existing.CreatedAt, now)
			inv.Date = existing.Date
			if err := invoiceRepo.Update(inv); err != nil {
				return err
			}
			// Las líneas se reemplazan completas: el borrador es la verdad.
			if err := invoiceRepo.DeleteDetailsByInvoiceID(inv.ID); err != nil {
				return err
			}
		}

		details = details[:0]
		for _, line := range payload.Lines {
			det := &entity.InvoiceDetail{
				ID:              uuid.New().String(),
				InvoiceID:       inv.ID,
				ProductID:       line.ProductID,
				ProductName:     line.ProductName,
				SKU:             line.SKU,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
				GrossAmount:     line.GrossAmount,
				DiscountPercent: line.DiscountPercent,
				DiscountAmount:  line.DiscountAmount,
				TaxRate:         line.TaxRate,
				TaxInclusive:    line.TaxInclusive,
				TaxAmount:       line.TaxAmount,
				LineTotal:       line.LineTotal,
			}
			if err := invoiceRepo.CreateDetail(det); err != nil {
				return err
			}
			details = append(details, det)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.sessions.finish(sessionID)

	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName, details), nil
}

// validPayment acepta estado vacío (queda PENDING) o uno de los conocidos,
// y medio de pago vacío o uno de los conocidos.
func validPayment(in dto.SubmitInvoiceRequest) bool {
	switch in.PaymentStatus {
	case "", entity.PaymentStatusPaid, entity.PaymentStatusPending:
	default:
		return false
	}
	switch in.PaymentMode {
	case "", entity.PaymentModeCash, entity.PaymentModeCard, entity.PaymentModeTransfer, entity.PaymentModeOther:
	default:
		return false
	}
	return true
}

func payloadToInvoice(p *domainbilling.Payload, id, companyID, number string, createdAt, updatedAt time.Time) *entity.Invoice {
	return &entity.Invoice{
		ID:            id,
		CompanyID:     companyID,
		CustomerID:    p.CustomerID,
		Number:        number,
		Date:          createdAt,
		SubtotalGross: p.SubtotalGross,
		TotalDiscount: p.TotalDiscount,
		TaxableAmount: p.TaxableAmount,
		TotalTax:      p.TotalTax,
		RoundOff:      p.RoundOff,
		GrandTotal:    p.GrandTotal,
		PaymentStatus: p.Payment.Status,
		PaymentMode:   p.Payment.Mode,
		PaymentRef:    p.Payment.Ref,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// toInvoiceResponse proyecta la factura persistida a DTO.
func toInvoiceResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		Number:        inv.Number,
		Date:          inv.Date.Format("2006-01-02"),
		SubtotalGross: inv.SubtotalGross,
		TotalDiscount: inv.TotalDiscount,
		TaxableAmount: inv.TaxableAmount,
		TotalTax:      inv.TotalTax,
		RoundOff:      inv.RoundOff,
		GrandTotal:    inv.GrandTotal,
		PaymentStatus: inv.PaymentStatus,
		PaymentMode:   inv.PaymentMode,
		PaymentRef:    inv.PaymentRef,
		Details:       make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:              d.ID,
			ProductID:       d.ProductID,
			ProductName:     d.ProductName,
			SKU:             d.SKU,
			Quantity:        d.Quantity,
			UnitPrice:       d.UnitPrice,
			GrossAmount:     d.GrossAmount,
			DiscountPercent: d.DiscountPercent,
			DiscountAmount:  d.DiscountAmount,
			TaxRate:         d.TaxRate,
			TaxInclusive:    d.TaxInclusive,
			TaxAmount:       d.TaxAmount,
			LineTotal:       d.LineTotal,
		})
	}
	return resp
}
