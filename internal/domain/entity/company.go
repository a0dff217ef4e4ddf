package entity

import "time"

// Company representa la empresa emisora (el vendedor dueño de la cuenta).
// RoundTotals define si las facturas nuevas inician con redondeo a unidad
// entera activado; cada sesión de edición puede sobreescribirlo.
type Company struct {
	ID          string
	Name        string
	TaxID       string
	Address     string
	Email       string
	Phone       string
	RoundTotals bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
