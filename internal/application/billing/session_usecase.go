package billing

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/money"
)

// InvoiceSession es una sesión de edición de factura: un borrador en memoria
// propiedad de un único editor, más el cliente seleccionado. Vive desde que
// el usuario abre la pantalla de factura hasta que envía o descarta.
type InvoiceSession struct {
	ID         string
	CompanyID  string
	InvoiceID  string // no vacío cuando se edita una factura ya guardada
	CustomerID string
	Draft      *domainbilling.Draft
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionUseCase administra las sesiones de edición. El mutex protege el mapa
// y las mutaciones de cada borrador: Fiber atiende peticiones concurrentes
// aunque cada sesión pertenezca a un solo editor.
type SessionUseCase struct {
	mu       sync.Mutex
	sessions map[string]*InvoiceSession

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
) *SessionUseCase {
	return &SessionUseCase{
		sessions:     make(map[string]*InvoiceSession),
		productRepo:  productRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Start abre una sesión de edición. Sin InvoiceID inicia un borrador vacío
// (el redondeo a unidad entera arranca con la preferencia de la empresa);
// con InvoiceID carga la factura guardada y reconstruye el borrador con sus
// líneas, para que ambos flujos (crear y editar) usen el mismo motor.
func (uc *SessionUseCase) Start(companyID string, in dto.StartSessionRequest) (*dto.SessionResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	s := &InvoiceSession{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.InvoiceID == "" {
		s.Draft = domainbilling.NewDraft(company.RoundTotals)
	} else {
		inv, err := uc.invoiceRepo.GetByID(in.InvoiceID)
		if err != nil || inv == nil {
			return nil, domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		details, err := uc.invoiceRepo.GetDetailsByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		draft, err := rebuildDraft(!inv.RoundOff.IsZero(), details)
		if err != nil {
			return nil, err
		}
		s.InvoiceID = inv.ID
		s.CustomerID = inv.CustomerID
		s.Draft = draft
	}

	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()
	return toSessionResponse(s), nil
}

// rebuildDraft reconstruye un borrador desde líneas persistidas usando las
// mismas operaciones del motor (las instantáneas de precio y tasa vienen de
// la línea guardada, no del catálogo actual).
func rebuildDraft(roundTotals bool, details []*entity.InvoiceDetail) (*domainbilling.Draft, error) {
	d := domainbilling.NewDraft(roundTotals)
	for _, det := range details {
		li, err := d.AddItem(domainbilling.ProductRef{
			ID:      det.ProductID,
			Name:    det.ProductName,
			SKU:     det.SKU,
			Price:   det.UnitPrice,
			TaxRate: det.TaxRate,
		}, det.Quantity)
		if err != nil {
			return nil, err
		}
		if !det.DiscountPercent.IsZero() {
			if err := d.UpdateDiscountPercent(li.ID, det.DiscountPercent); err != nil {
				return nil, err
			}
		}
		if det.TaxInclusive {
			if err := d.UpdateTaxInclusive(li.ID, true); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// Get devuelve el estado vigente de la sesión.
func (uc *SessionUseCase) Get(companyID, sessionID string) (*dto.SessionResponse, error) {
	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()
	return toSessionResponse(s), nil
}

// AddItem agrega unidades de un producto del catálogo al borrador.
// Precio y tasa se copian del producto en este momento (instantánea).
func (uc *SessionUseCase) AddItem(companyID, sessionID string, in dto.AddItemRequest) (*dto.SessionResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()

	_, err = s.Draft.AddItem(domainbilling.ProductRef{
		ID:      product.ID,
		Name:    product.Name,
		SKU:     product.SKU,
		Price:   product.Price,
		TaxRate: product.TaxRate,
	}, in.Quantity)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	return toSessionResponse(s), nil
}

// UpdateItem aplica los campos enviados a una línea: cantidad, porcentaje de
// descuento y/o impuesto incluido.
func (uc *SessionUseCase) UpdateItem(companyID, sessionID, itemID string, in dto.UpdateItemRequest) (*dto.SessionResponse, error) {
	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()

	if in.Quantity != nil {
		if err := s.Draft.UpdateQuantity(itemID, *in.Quantity); err != nil {
			return nil, err
		}
	}
	if in.DiscountPercent != nil {
		if err := s.Draft.UpdateDiscountPercent(itemID, *in.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if in.TaxInclusive != nil {
		if err := s.Draft.UpdateTaxInclusive(itemID, *in.TaxInclusive); err != nil {
			return nil, err
		}
	}
	s.UpdatedAt = time.Now()
	return toSessionResponse(s), nil
}

// RemoveItem elimina una línea del borrador.
func (uc *SessionUseCase) RemoveItem(companyID, sessionID, itemID string) (*dto.SessionResponse, error) {
	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()

	s.Draft.RemoveItem(itemID)
	s.UpdatedAt = time.Now()
	return toSessionResponse(s), nil
}

// SelectCustomer valida y fija el cliente de la factura.
func (uc *SessionUseCase) SelectCustomer(companyID, sessionID, customerID string) (*dto.SessionResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()

	s.CustomerID = customerID
	s.UpdatedAt = time.Now()
	return toSessionResponse(s), nil
}

// SetRoundTotals activa o desactiva el redondeo del total en la sesión.
func (uc *SessionUseCase) SetRoundTotals(companyID, sessionID string, enabled bool) (*dto.SessionResponse, error) {
	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()

	s.Draft.SetRoundTotals(enabled)
	s.UpdatedAt = time.Now()
	return toSessionResponse(s), nil
}

// Discard descarta la sesión. Descartar una sesión inexistente no es error.
func (uc *SessionUseCase) Discard(companyID, sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if s, ok := uc.sessions[sessionID]; ok && s.CompanyID == companyID {
		delete(uc.sessions, sessionID)
	}
}

// snapshot devuelve la sesión para uso del caso de uso de envío.
func (uc *SessionUseCase) snapshot(companyID, sessionID string) (*InvoiceSession, error) {
	s, err := uc.locked(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	defer uc.mu.Unlock()
	return s, nil
}

// finish retira la sesión después de un envío exitoso (estado terminal).
func (uc *SessionUseCase) finish(sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.sessions, sessionID)
}

// locked busca la sesión y deja el mutex tomado si la encuentra.
// El caller debe liberar uc.mu cuando el error es nil.
func (uc *SessionUseCase) locked(companyID, sessionID string) (*InvoiceSession, error) {
	uc.mu.Lock()
	s, ok := uc.sessions[sessionID]
	if !ok {
		uc.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		uc.mu.Unlock()
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// toSessionResponse proyecta la sesión a DTO con montos a 2 decimales.
func toSessionResponse(s *InvoiceSession) *dto.SessionResponse {
	items := s.Draft.Items()
	resp := &dto.SessionResponse{
		ID:          s.ID,
		InvoiceID:   s.InvoiceID,
		CustomerID:  s.CustomerID,
		RoundTotals: s.Draft.RoundTotals(),
		Items:       make([]dto.LineItemResponse, 0, len(items)),
	}
	for _, li := range items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:              li.ID,
			ProductID:       li.ProductID,
			ProductName:     li.ProductName,
			SKU:             li.SKU,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			DiscountPercent: li.DiscountPercent,
			DiscountAmount:  money.Round2(li.DiscountAmount),
			TaxRate:         li.TaxRate,
			TaxInclusive:    li.TaxInclusive,
			GrossAmount:     money.Round2(li.GrossAmount),
			TaxAmount:       money.Round2(li.TaxAmount),
			LineTotal:       money.Round2(li.LineTotal),
		})
	}

	t := s.Draft.Totals()
	resp.Totals = dto.TotalsResponse{
		SubtotalGross: money.Round2(t.SubtotalGross),
		TotalDiscount: money.Round2(t.TotalDiscount),
		TaxableAmount: money.Round2(t.TaxableAmount),
		TotalTax:      money.Round2(t.TotalTax),
		TaxBreakdown:  make([]dto.TaxGroupResponse, 0, len(t.TaxBreakdown)),
		RoundOff:      t.RoundOff,
		GrandTotal:    money.Round2(t.GrandTotal),
	}
	for _, g := range t.TaxBreakdown {
		resp.Totals.TaxBreakdown = append(resp.Totals.TaxBreakdown, dto.TaxGroupResponse{
			Rate:      g.Rate,
			Amount:    money.Round2(g.Amount),
			LineCount: g.LineCount,
		})
	}
	return resp
}
