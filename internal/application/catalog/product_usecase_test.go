package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoque-pro/estoque-api/internal/application/apptest"
	"github.com/estoque-pro/estoque-api/internal/application/catalog"
	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

type productFixture struct {
	uc         *catalog.ProductUseCase
	products   *apptest.MemProductRepo
	categories *apptest.MemCategoryRepo
	suppliers  *apptest.MemSupplierRepo
	movements  *apptest.MemMovementRepo
	salesRepo  *apptest.MemSaleRepo
}

func buildProductFixture() productFixture {
	products := apptest.NewMemProductRepo()
	categories := apptest.NewMemCategoryRepo()
	suppliers := apptest.NewMemSupplierRepo()
	movements := apptest.NewMemMovementRepo()
	salesRepo := apptest.NewMemSaleRepo()
	return productFixture{
		uc:         catalog.NewProductUseCase(products, categories, suppliers, movements, salesRepo),
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		movements:  movements,
		salesRepo:  salesRepo,
	}
}

// Crear sin minimum_stock aplica el default del modelo (5).
func TestCreateProduct_MinimoPorDefecto(t *testing.T) {
	f := buildProductFixture()

	out, err := f.uc.Create(dto.CreateProductRequest{
		Code:  "P-100",
		Name:  "Martillo",
		Price: decimal.NewFromFloat(12.90),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.MinimumStock)
	assert.Equal(t, int64(0), out.QuantityInStock)
}

// Crear con minimum_stock explícito lo respeta, incluso cero.
func TestCreateProduct_MinimoExplicito(t *testing.T) {
	f := buildProductFixture()

	zero := int64(0)
	out, err := f.uc.Create(dto.CreateProductRequest{
		Code:         "P-101",
		Name:         "Destornillador",
		MinimumStock: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.MinimumStock)
}

// Código duplicado → ErrDuplicateName (chequeo previo, no error de base).
func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	f := buildProductFixture()

	_, err := f.uc.Create(dto.CreateProductRequest{Code: "P-1", Name: "Uno"})
	require.NoError(t, err)
	_, err = f.uc.Create(dto.CreateProductRequest{Code: "P-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

// Entradas inválidas: código o nombre vacíos, precio o cantidad negativos.
func TestCreateProduct_EntradasInvalidas(t *testing.T) {
	f := buildProductFixture()

	cases := []dto.CreateProductRequest{
		{Code: "", Name: "SinCodigo"},
		{Code: "X", Name: ""},
		{Code: "X", Name: "PrecioNegativo", Price: decimal.NewFromFloat(-1)},
		{Code: "X", Name: "CantidadNegativa", QuantityInStock: -1},
	}
	for _, in := range cases {
		_, err := f.uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %+v", in)
	}
}

// Referencias opcionales a categoría/proveedor deben existir.
func TestCreateProduct_ReferenciaInexistente(t *testing.T) {
	f := buildProductFixture()

	bogus := "99999999-9999-9999-9999-999999999999"
	_, err := f.uc.Create(dto.CreateProductRequest{
		Code: "P-2", Name: "ConCategoria", CategoryID: &bogus,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Con la categoría creada, pasa
	require.NoError(t, f.categories.Create(&entity.Category{
		ID: bogus, Name: "Herramientas", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	out, err := f.uc.Create(dto.CreateProductRequest{
		Code: "P-2", Name: "ConCategoria", CategoryID: &bogus,
	})
	require.NoError(t, err)
	require.NotNil(t, out.CategoryID)
	assert.Equal(t, bogus, *out.CategoryID)
}

// Update cambia precio y nombre pero nunca QuantityInStock.
func TestUpdateProduct_NoTocaElEstoque(t *testing.T) {
	f := buildProductFixture()

	created, err := f.uc.Create(dto.CreateProductRequest{
		Code: "P-3", Name: "Original", Price: decimal.NewFromFloat(5), QuantityInStock: 42,
	})
	require.NoError(t, err)

	newName := "Renombrado"
	newPrice := decimal.NewFromFloat(7.50)
	out, err := f.uc.Update(created.ID, dto.UpdateProductRequest{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)
	assert.True(t, newPrice.Equal(out.Price))
	assert.Equal(t, int64(42), out.QuantityInStock, "el estoque solo lo mueven los movimientos")
}

// Update a un código ya usado por otro producto → ErrDuplicateName.
func TestUpdateProduct_CodigoDeOtro(t *testing.T) {
	f := buildProductFixture()

	_, err := f.uc.Create(dto.CreateProductRequest{Code: "P-A", Name: "A"})
	require.NoError(t, err)
	b, err := f.uc.Create(dto.CreateProductRequest{Code: "P-B", Name: "B"})
	require.NoError(t, err)

	codeA := "P-A"
	_, err = f.uc.Update(b.ID, dto.UpdateProductRequest{Code: &codeA})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

// Borrar un producto con movimientos en el libro mayor está prohibido.
func TestDeleteProduct_ConMovimientos(t *testing.T) {
	f := buildProductFixture()

	created, err := f.uc.Create(dto.CreateProductRequest{Code: "P-4", Name: "ConHistoria"})
	require.NoError(t, err)
	require.NoError(t, f.movements.Create(&entity.StockMovement{
		ID: "m1", ProductID: created.ID, Type: entity.MovementTypeEntrada,
		Quantity: 1, Date: time.Now(),
	}))

	err = f.uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	// Sigue existiendo
	_, err = f.uc.GetByID(created.ID)
	assert.NoError(t, err)
}

// Borrar un producto referenciado por líneas de venta también está prohibido.
func TestDeleteProduct_ConVentas(t *testing.T) {
	f := buildProductFixture()

	created, err := f.uc.Create(dto.CreateProductRequest{Code: "P-5", Name: "Vendido"})
	require.NoError(t, err)
	require.NoError(t, f.salesRepo.CreateItem(&entity.SaleItem{
		ID: "i1", SaleID: "s1", ProductID: created.ID, Quantity: 1,
		PricePerItem: decimal.Zero, Subtotal: decimal.Zero,
	}))

	err = f.uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

// Borrar un producto sin historia funciona.
func TestDeleteProduct_SinHistoria(t *testing.T) {
	f := buildProductFixture()

	created, err := f.uc.Create(dto.CreateProductRequest{Code: "P-6", Name: "Nuevo"})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(created.ID))

	_, err = f.uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ListLowStock incluye el caso límite cantidad == mínimo.
func TestListLowStock_IncluyeElLimite(t *testing.T) {
	f := buildProductFixture()

	min5 := int64(5)
	mk := func(code, name string, qty int64) {
		t.Helper()
		_, err := f.uc.Create(dto.CreateProductRequest{
			Code: code, Name: name, QuantityInStock: qty, MinimumStock: &min5,
		})
		require.NoError(t, err)
	}
	mk("L-1", "Abajo", 2)
	mk("L-2", "Justo", 5)
	mk("L-3", "Sobrado", 50)

	out, err := f.uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Abajo", out[0].Name)
	assert.Equal(t, "Justo", out[1].Name)
}
