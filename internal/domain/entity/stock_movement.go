package entity

import "time"

// Tipos de movimiento de estoque.
const (
	MovementTypeEntrada = "entrada" // suma al estoque
	MovementTypeSalida  = "salida"  // resta del estoque
)

// StockMovement representa una entrada o salida de estoque.
// Es un asiento de libro mayor append-only: una vez creado nunca se actualiza ni borra.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada, salida
	Quantity  int64  // siempre > 0; el signo lo da Type
	Reason    string // obligatorio en salida, opcional en entrada
	Date      time.Time
	CreatedBy string // UserID
}
