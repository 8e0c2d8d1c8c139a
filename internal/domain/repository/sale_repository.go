package repository

import "github.com/estoque-pro/estoque-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y SaleItem (DIP).
// Delete elimina la venta y sus items en cascada (FK ON DELETE CASCADE).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus items ordenados.
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	CountItemsByProduct(productID string) (int64, error)
	Delete(id string) error
}
