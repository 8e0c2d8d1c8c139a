package entity

import "time"

// Supplier representa un proveedor de productos. Name es único (comparación exacta).
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string // opcional: email, teléfono, etc.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
