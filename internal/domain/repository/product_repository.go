package repository

import "github.com/estoque-pro/estoque-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; el motor de inventario lo usa
	// para el read-modify-write de QuantityInStock.
	GetByIDForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock actualiza solo QuantityInStock y LastUpdated (usado por el motor de inventario).
	UpdateStock(productID string, quantity int64) error
	// ListByName lista productos ordenados por nombre con paginación.
	ListByName(limit, offset int) ([]*entity.Product, error)
	// ListLowStock lista productos con QuantityInStock <= MinimumStock, ordenados por nombre.
	ListLowStock() ([]*entity.Product, error)
	CountByCategory(categoryID string) (int64, error)
	CountBySupplier(supplierID string) (int64, error)
	Delete(id string) error
}
