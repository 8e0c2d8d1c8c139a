package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/entradas y /api/stock/salidas.
// Reason es obligatorio en salidas; en entradas es opcional.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"omitempty,max=128"`
}

// MovementResponse salida de un movimiento de estoque.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// MovementResult producto actualizado + movimiento creado (respuesta de entradas/salidas).
type MovementResult struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// MovementListResponse historial de movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
