package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoque-pro/estoque-api/internal/application/apptest"
	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/application/sales"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

const (
	productAID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	productBID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	sellerID   = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

type fixture struct {
	uc        *sales.SaleUseCase
	products  *apptest.MemProductRepo
	movements *apptest.MemMovementRepo
	salesRepo *apptest.MemSaleRepo
}

// buildFixture arma el caso de uso con dos productos:
// A ($10.00, 20 unidades) y B ($2.50, 4 unidades).
func buildFixture(t *testing.T) fixture {
	t.Helper()
	products := apptest.NewMemProductRepo()
	movements := apptest.NewMemMovementRepo()
	salesRepo := apptest.NewMemSaleRepo()

	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID: productAID, Code: "A-001", Name: "Cemento 50kg",
		Price: decimal.NewFromFloat(10.00), QuantityInStock: 20,
		MinimumStock: 5, LastUpdated: now, CreatedAt: now,
	}))
	require.NoError(t, products.Create(&entity.Product{
		ID: productBID, Code: "B-001", Name: "Arena fina",
		Price: decimal.NewFromFloat(2.50), QuantityInStock: 4,
		MinimumStock: 2, LastUpdated: now, CreatedAt: now,
	}))

	runner := apptest.NewMemTxRunner(products, movements, salesRepo)
	return fixture{
		uc:        sales.NewSaleUseCase(runner, products, salesRepo),
		products:  products,
		movements: movements,
		salesRepo: salesRepo,
	}
}

// Una venta de dos líneas descuenta el estoque de ambos productos, captura el
// precio vigente por línea y calcula total y vuelto.
func TestCreateSale_DosLineas_DescuentaYCalcula(t *testing.T) {
	f := buildFixture(t)

	out, err := f.uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productAID, Quantity: 3}, // 3 × $10.00 = $30.00
			{ProductID: productBID, Quantity: 2}, // 2 × $2.50  = $5.00
		},
		AmountPaid: decimal.NewFromFloat(40.00),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(35.00).Equal(out.TotalAmount), "total = 35.00, fue %s", out.TotalAmount)
	assert.True(t, decimal.NewFromFloat(5.00).Equal(out.Change), "vuelto = 5.00, fue %s", out.Change)
	assert.Equal(t, sellerID, out.UserID)
	require.Len(t, out.Items, 2)
	assert.True(t, decimal.NewFromFloat(10.00).Equal(out.Items[0].PricePerItem))
	assert.True(t, decimal.NewFromFloat(30.00).Equal(out.Items[0].Subtotal))

	a, _ := f.products.GetByID(productAID)
	b, _ := f.products.GetByID(productBID)
	assert.Equal(t, int64(17), a.QuantityInStock)
	assert.Equal(t, int64(2), b.QuantityInStock)

	// Una salida en el libro mayor por cada línea, con la venta como motivo
	countA, _ := f.movements.CountByProduct(productAID)
	countB, _ := f.movements.CountByProduct(productBID)
	assert.Equal(t, int64(1), countA)
	assert.Equal(t, int64(1), countB)
	assert.Contains(t, f.movements.Movements[0].Reason, "venta "+out.ID)
}

// El precio capturado en la línea no cambia cuando el precio del producto cambia después.
func TestCreateSale_PrecioCapturadoEsHistorico(t *testing.T) {
	f := buildFixture(t)

	out, err := f.uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: productAID, Quantity: 1}},
		AmountPaid: decimal.NewFromFloat(10.00),
	})
	require.NoError(t, err)

	// Subir el precio del producto después de la venta
	a, _ := f.products.GetByID(productAID)
	a.Price = decimal.NewFromFloat(99.99)
	require.NoError(t, f.products.Update(a))

	stored, err := f.uc.GetByID(out.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, decimal.NewFromFloat(10.00).Equal(stored.Items[0].PricePerItem),
		"la línea debe conservar el precio al momento de la venta")
}

// Si una línea excede el estoque, TODA la venta se revierte: ni las líneas
// anteriores descuentan estoque, ni queda asiento ni venta alguna.
func TestCreateSale_LineaSinEstoque_RollbackTotal(t *testing.T) {
	f := buildFixture(t)

	_, err := f.uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productAID, Quantity: 3},  // válida
			{ProductID: productBID, Quantity: 10}, // B solo tiene 4
		},
		AmountPaid: decimal.NewFromFloat(100.00),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := f.products.GetByID(productAID)
	b, _ := f.products.GetByID(productBID)
	assert.Equal(t, int64(20), a.QuantityInStock, "la línea válida también debe revertirse")
	assert.Equal(t, int64(4), b.QuantityInStock)
	assert.Empty(t, f.movements.Movements, "sin asientos tras el rollback")

	list, err := f.uc.List(dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "no debe quedar ninguna venta")
}

// Pago insuficiente → ErrInvalidInput y rollback de las salidas ya aplicadas.
func TestCreateSale_PagoInsuficiente_Rollback(t *testing.T) {
	f := buildFixture(t)

	_, err := f.uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: productAID, Quantity: 2}},
		AmountPaid: decimal.NewFromFloat(15.00), // total es 20.00
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	a, _ := f.products.GetByID(productAID)
	assert.Equal(t, int64(20), a.QuantityInStock)
	assert.Empty(t, f.movements.Movements)
}

// Venta sin líneas o con cantidades inválidas se rechaza de entrada.
func TestCreateSale_EntradaInvalida(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateSale(ctx, sellerID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateSale(ctx, sellerID, dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: productAID, Quantity: 0}},
		AmountPaid: decimal.NewFromFloat(10.00),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Eliminar una venta borra cabecera e items pero NO toca el libro de movimientos.
func TestDeleteSale_NoReescribeElLibroMayor(t *testing.T) {
	f := buildFixture(t)

	out, err := f.uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: productAID, Quantity: 2}},
		AmountPaid: decimal.NewFromFloat(20.00),
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(out.ID))

	_, err = f.uc.GetByID(out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El asiento de la salida sigue ahí y el estoque no se repone
	count, _ := f.movements.CountByProduct(productAID)
	assert.Equal(t, int64(1), count, "el movimiento debe sobrevivir al borrado de la venta")
	a, _ := f.products.GetByID(productAID)
	assert.Equal(t, int64(18), a.QuantityInStock)
}

// Eliminar una venta inexistente → ErrNotFound.
func TestDeleteSale_Inexistente(t *testing.T) {
	f := buildFixture(t)
	err := f.uc.Delete("99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
