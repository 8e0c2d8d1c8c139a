package repository

import (
	"time"

	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para StockMovement (DIP).
// El libro mayor es append-only: no existe Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int64, error)
}
