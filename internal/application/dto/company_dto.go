package dto

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateCompanyRequest body para PUT /api/company (perfil del emisor).
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	RoundTotals *bool   `json:"round_totals,omitempty"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	RoundTotals bool   `json:"round_totals"`
}
