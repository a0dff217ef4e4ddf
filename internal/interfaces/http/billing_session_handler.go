package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// BillingSessionHandler maneja las sesiones de edición de factura: el
// borrador vive en el servidor y cada mutación devuelve el estado completo
// recalculado, la pantalla solo pinta lo que recibe.
type BillingSessionHandler struct {
	sessions *billing.SessionUseCase
	submit   *billing.SubmitInvoiceUseCase
}

// NewBillingSessionHandler construye el handler.
func NewBillingSessionHandler(sessions *billing.SessionUseCase, submit *billing.SubmitInvoiceUseCase) *BillingSessionHandler {
	return &BillingSessionHandler{sessions: sessions, submit: submit}
}

// Start godoc
// @Summary      Abrir sesión de edición de factura
// @Description  Sin invoice_id inicia un borrador vacío; con invoice_id carga la factura para edición.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  false  "invoice_id opcional"
// @Success      201   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/sessions [post]
func (h *BillingSessionHandler) Start(c *fiber.Ctx) error {
	var in dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.sessions.Start(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado vigente de la sesión
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id} [get]
func (h *BillingSessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.sessions.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto al borrador
// @Description  Si el producto ya está en el borrador se suman las unidades y se refresca la instantánea de precio y tasa.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.AddItemRequest  true  "product_id y quantity"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/items [post]
func (h *BillingSessionHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.AddItem(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Modificar una línea del borrador
// @Description  Aplica solo los campos enviados: quantity, discount_percent y/o tax_inclusive.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la sesión"
// @Param        itemID  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200     {object}  dto.SessionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/items/{itemID} [patch]
func (h *BillingSessionHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.UpdateItem(GetCompanyID(c), c.Params("id"), c.Params("itemID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar una línea del borrador
// @Description  Quitar una línea inexistente no es error: el estado resultante es el mismo.
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la sesión"
// @Param        itemID  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.SessionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/items/{itemID} [delete]
func (h *BillingSessionHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.sessions.RemoveItem(GetCompanyID(c), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectCustomer godoc
// @Summary      Fijar el cliente de la factura
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SelectCustomerRequest  true  "customer_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/customer [put]
func (h *BillingSessionHandler) SelectCustomer(c *fiber.Ctx) error {
	var in dto.SelectCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.SelectCustomer(GetCompanyID(c), c.Params("id"), in.CustomerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetRoundTotals godoc
// @Summary      Activar o desactivar el redondeo del total
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.RoundTotalsRequest  true  "enabled"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/round-totals [put]
func (h *BillingSessionHandler) SetRoundTotals(c *fiber.Ctx) error {
	var in dto.RoundTotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.SetRoundTotals(GetCompanyID(c), c.Params("id"), in.Enabled)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Emitir la factura de la sesión
// @Description  Persiste cabecera y líneas en una transacción; la sesión queda terminada.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SubmitInvoiceRequest  true  "Datos de pago"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/billing/sessions/{id}/submit [post]
func (h *BillingSessionHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.submit.Submit(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Discard godoc
// @Summary      Descartar la sesión
// @Tags         billing
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Router       /api/billing/sessions/{id} [delete]
func (h *BillingSessionHandler) Discard(c *fiber.Ctx) error {
	h.sessions.Discard(GetCompanyID(c), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
