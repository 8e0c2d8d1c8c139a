package repository

import "github.com/estoque-pro/estoque-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// ListByName lista todos los proveedores ordenados por nombre.
	ListByName() ([]*entity.Supplier, error)
	Delete(id string) error
}
