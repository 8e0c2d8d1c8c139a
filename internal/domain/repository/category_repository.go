package repository

import "github.com/estoque-pro/estoque-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	// ListByName lista todas las categorías ordenadas por nombre.
	ListByName() ([]*entity.Category, error)
	Delete(id string) error
}
