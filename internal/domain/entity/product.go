package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinimumStock es el estoque mínimo cuando no se indica al crear el producto.
const DefaultMinimumStock = 5

// Product representa un producto del estoque.
// QuantityInStock es un total denormalizado: siempre igual a la suma neta de sus
// StockMovement (entradas suman, salidas restan). Solo el motor de inventario lo muta.
type Product struct {
	ID              string
	Code            string          // código único
	Name            string
	Price           decimal.Decimal // precio de venta, 2 decimales, >= 0
	QuantityInStock int64
	MinimumStock    int64
	LastUpdated     time.Time
	CategoryID      *string // referencia opcional
	SupplierID      *string // referencia opcional
	CreatedAt       time.Time
}

// BelowMinimum indica si el producto está en o por debajo de su estoque mínimo.
func (p *Product) BelowMinimum() bool {
	return p.QuantityInStock <= p.MinimumStock
}
