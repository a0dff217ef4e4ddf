package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// CompanyRepository puerto de persistencia para la empresa emisora.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
}
