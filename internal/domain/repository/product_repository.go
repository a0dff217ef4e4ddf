package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos del catálogo.
// Los métodos Get* devuelven (nil, nil) cuando el recurso no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	SearchByName(companyID, query string, limit int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
