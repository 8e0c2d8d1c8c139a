package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/application/inventory"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. QuantityInStock solo se fija al crear;
// después únicamente lo muta el motor de estoque vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	movRepo      repository.StockMovementRepository
	saleRepo     repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		movRepo:      movRepo,
		saleRepo:     saleRepo,
	}
}

// Create crea un producto. Code único y no vacío; precio >= 0; cantidad inicial >= 0.
// MinimumStock sin especificar aplica el default del modelo (5).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.QuantityInStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	minimum := int64(entity.DefaultMinimumStock)
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		minimum = *in.MinimumStock
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	if err := uc.checkReferences(in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Code:            in.Code,
		Name:            in.Name,
		Price:           in.Price.Round(2),
		QuantityInStock: in.QuantityInStock,
		MinimumStock:    minimum,
		LastUpdated:     now,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		CreatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return inventory.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return inventory.ToProductResponse(product), nil
}

// Update actualiza un producto revalidando las mismas reglas de Create y
// refrescando LastUpdated. No toca QuantityInStock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		if *in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		if *in.Code != product.Code {
			existing, err := uc.repo.GetByCode(*in.Code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicateName
			}
		}
		product.Code = *in.Code
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = in.Price.Round(2)
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.CategoryID != nil || in.SupplierID != nil {
		if err := uc.checkReferences(in.CategoryID, in.SupplierID); err != nil {
			return nil, err
		}
		if in.CategoryID != nil {
			product.CategoryID = nilIfEmpty(in.CategoryID)
		}
		if in.SupplierID != nil {
			product.SupplierID = nilIfEmpty(in.SupplierID)
		}
	}
	product.LastUpdated = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return inventory.ToProductResponse(product), nil
}

// List lista productos ordenados por nombre con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByName(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *inventory.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock lista los productos en o por debajo de su estoque mínimo.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *inventory.ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. El historial es intocable: si existen movimientos
// de estoque o items de venta que lo referencian, falla con ErrReferentialIntegrity.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	movements, err := uc.movRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if movements > 0 {
		return domain.ErrReferentialIntegrity
	}
	saleItems, err := uc.saleRepo.CountItemsByProduct(id)
	if err != nil {
		return err
	}
	if saleItems > 0 {
		return domain.ErrReferentialIntegrity
	}
	return uc.repo.Delete(id)
}

// checkReferences valida que las referencias opcionales a categoría y proveedor existan.
func (uc *ProductUseCase) checkReferences(categoryID, supplierID *string) error {
	if categoryID != nil && *categoryID != "" {
		category, err := uc.categoryRepo.GetByID(*categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
	}
	if supplierID != nil && *supplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(*supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
