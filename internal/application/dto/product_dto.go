package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// MinimumStock es opcional; si es nil se aplica el default del modelo (5).
type CreateProductRequest struct {
	Code            string           `json:"code" validate:"required,min=1,max=64"`
	Name            string           `json:"name" validate:"required,min=1,max=128"`
	Price           decimal.Decimal  `json:"price"`
	QuantityInStock int64            `json:"quantity_in_stock" validate:"min=0"`
	MinimumStock    *int64           `json:"minimum_stock"`
	CategoryID      *string          `json:"category_id" validate:"omitempty,uuid4"`
	SupplierID      *string          `json:"supplier_id" validate:"omitempty,uuid4"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No incluye QuantityInStock: el estoque solo se mueve vía movimientos.
type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=64"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=128"`
	Price        *decimal.Decimal `json:"price"`
	MinimumStock *int64           `json:"minimum_stock"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,uuid4"`
	SupplierID   *string          `json:"supplier_id" validate:"omitempty,uuid4"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	MinimumStock    int64           `json:"minimum_stock"`
	LastUpdated     time.Time       `json:"last_updated"`
	CategoryID      *string         `json:"category_id,omitempty"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
