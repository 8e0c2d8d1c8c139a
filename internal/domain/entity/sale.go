package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta realizada por un usuario.
type Sale struct {
	ID          string
	Date        time.Time
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Change      decimal.Decimal
	UserID      string
	Items       []*SaleItem
}

// SaleItem representa una línea de venta. PricePerItem es el precio del producto
// en el momento de la venta, desacoplado a propósito del precio actual del producto.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     int64
	PricePerItem decimal.Decimal
	Subtotal     decimal.Decimal
}
