package sales

import (
	"context"

	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// SaleTxRunner inicia una transacción con los repositorios de estoque y ventas.
// Cabecera, items y salidas de estoque de la venta se confirman o revierten juntos.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
