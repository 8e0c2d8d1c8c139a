package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. El precio se toma del producto al momento de vender.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items      []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
}

// SaleItemResponse línea de venta con el precio capturado.
type SaleItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus items.
type SaleResponse struct {
	ID          string             `json:"id"`
	Date        time.Time          `json:"date"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	AmountPaid  decimal.Decimal    `json:"amount_paid"`
	Change      decimal.Decimal    `json:"change"`
	UserID      string             `json:"user_id"`
	Items       []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
