package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CompanyUseCase casos de uso del perfil de la empresa emisora.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa (alta inicial de la cuenta).
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get obtiene el perfil de la empresa.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update actualiza los campos enviados del perfil, incluida la preferencia
// de redondeo del total para facturas nuevas.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.RoundTotals != nil {
		company.RoundTotals = *in.RoundTotals
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Address:     c.Address,
		Email:       c.Email,
		Phone:       c.Phone,
		RoundTotals: c.RoundTotals,
	}
}
