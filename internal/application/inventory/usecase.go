package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de estoque de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// QuantityInStock del producto y el asiento en stock_movements se escriben juntos:
// el total denormalizado siempre coincide con la suma neta del libro mayor.
type MovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// RegisterEntrada registra una entrada: suma Quantity al estoque del producto y
// guarda el movimiento. Reason es opcional. Devuelve el producto actualizado y el movimiento.
func (uc *MovementUseCase) RegisterEntrada(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, entity.MovementTypeEntrada, userID, in)
}

// RegisterSalida registra una salida: Reason es obligatorio y la cantidad no puede
// superar el estoque actual (verificado sobre la fila bloqueada, no sobre una lectura previa).
func (uc *MovementUseCase) RegisterSalida(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, entity.MovementTypeSalida, userID, in)
}

// apply inicia la transacción, bloquea la fila del producto, aplica el movimiento
// y hace Commit o Rollback (TxRunner.Run lo garantiza).
func (uc *MovementUseCase) apply(ctx context.Context, movType, userID string, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	var product *entity.Product
	var mov *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		product, mov, err = ApplyMovementInTx(productRepo, movRepo, movType, in.ProductID, in.Quantity, in.Reason, userID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{
		Product:  *ToProductResponse(product),
		Movement: *ToMovementResponse(mov),
	}, nil
}

// ApplyMovementInTx aplica un movimiento usando repositorios ya atados a una transacción
// (misma tx del caller). Lo usa este caso de uso y el de ventas para descontar estoque
// por cada línea dentro de la transacción de la venta.
func ApplyMovementInTx(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	movType, productID string,
	quantity int64,
	reason, userID string,
	now time.Time,
) (*entity.Product, *entity.StockMovement, error) {
	// Bloquea la fila del producto para el read-modify-write de QuantityInStock
	product, err := productRepo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	switch movType {
	case entity.MovementTypeEntrada:
		product.QuantityInStock += quantity
	case entity.MovementTypeSalida:
		if quantity > product.QuantityInStock {
			return nil, nil, domain.ErrInsufficientStock
		}
		product.QuantityInStock -= quantity
	default:
		return nil, nil, domain.ErrInvalidInput
	}
	product.LastUpdated = now
	if err := productRepo.UpdateStock(product.ID, product.QuantityInStock); err != nil {
		return nil, nil, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movType,
		Quantity:  quantity,
		Reason:    strings.TrimSpace(reason),
		Date:      now,
		CreatedBy: userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	return product, mov, nil
}

// ListMovements devuelve el historial de movimientos de un producto (más reciente primero).
func (uc *MovementUseCase) ListMovements(productID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Price:           p.Price,
		QuantityInStock: p.QuantityInStock,
		MinimumStock:    p.MinimumStock,
		LastUpdated:     p.LastUpdated,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		CreatedAt:       p.CreatedAt,
	}
}

// ToMovementResponse mapea la entidad a su DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}
