package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	TaxID        string `json:"tax_id"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
// Punteros: solo se aplica lo enviado.
type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	TaxID        string `json:"tax_id"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}
