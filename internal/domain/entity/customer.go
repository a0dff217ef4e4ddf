package entity

import "time"

// Customer representa un cliente de la empresa (facturación).
type Customer struct {
	ID           string
	CompanyID    string
	Name         string
	BusinessName string // razón social del cliente, opcional
	TaxID        string // NIT o cédula
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
