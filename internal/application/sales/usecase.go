package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/application/inventory"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// SaleUseCase registra ventas y descuenta el estoque en una sola transacción.
// Cada línea captura el precio del producto al momento de la venta (PricePerItem),
// desacoplado del precio actual para mantener exactitud histórica.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner SaleTxRunner, productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, productRepo: productRepo, saleRepo: saleRepo}
}

// CreateSale valida las líneas, y dentro de una transacción registra una salida de
// estoque por cada línea y persiste cabecera + items. Si alguna línea no tiene
// estoque suficiente, toda la venta se revierte.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	saleID := uuid.New().String() // se usa como referencia en el motivo de las salidas
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))

		// Por cada línea: salida de estoque (con bloqueo de fila) y snapshot del precio.
		// La salida dentro de la tx garantiza que el check de estoque es sobre el valor vivo.
		for _, line := range in.Items {
			product, _, err := inventory.ApplyMovementInTx(
				productRepo, movRepo,
				entity.MovementTypeSalida,
				line.ProductID, line.Quantity,
				"venta "+saleID, userID, now,
			)
			if err != nil {
				return err
			}
			subtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, &entity.SaleItem{
				ID:           uuid.New().String(),
				SaleID:       saleID,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				PricePerItem: product.Price,
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)
		}

		if in.AmountPaid.LessThan(total) {
			return domain.ErrInvalidInput
		}

		sale = &entity.Sale{
			ID:          saleID,
			Date:        now,
			TotalAmount: total,
			AmountPaid:  in.AmountPaid.Round(2),
			Change:      in.AmountPaid.Sub(total).Round(2),
			UserID:      userID,
			Items:       items,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta con sus items.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista ventas (más recientes primero) con paginación.
func (uc *SaleUseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una venta y sus items en cascada. Los movimientos de estoque que
// la venta generó NO se tocan: el libro mayor es historia inmutable.
func (uc *SaleUseCase) Delete(id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.Delete(id)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PricePerItem: it.PricePerItem,
			Subtotal:     it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		TotalAmount: s.TotalAmount,
		AmountPaid:  s.AmountPaid,
		Change:      s.Change,
		UserID:      s.UserID,
		Items:       items,
	}
}
