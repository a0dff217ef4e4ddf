package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores de facturación (borrador de factura y construcción del payload).
var (
	ErrInvalidQuantity = errors.New("cantidad inválida: debe ser >= 1")
	ErrInvalidPrice    = errors.New("precio unitario inválido: debe ser >= 0")
	ErrEmptyInvoice    = errors.New("la factura no tiene líneas")
	ErrMissingCustomer = errors.New("la factura no tiene cliente seleccionado")
	ErrMissingBiller   = errors.New("falta la identidad del emisor")
)
