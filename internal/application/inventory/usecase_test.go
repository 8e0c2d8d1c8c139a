package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoque-pro/estoque-api/internal/application/apptest"
	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/application/inventory"
	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testUserID    = "22222222-2222-2222-2222-222222222222"
)

// buildUseCase arma el caso de uso sobre repos en memoria con un producto
// inicial con el estoque indicado.
func buildUseCase(initialStock int64) (*inventory.MovementUseCase, *apptest.MemProductRepo, *apptest.MemMovementRepo) {
	products := apptest.NewMemProductRepo()
	movements := apptest.NewMemMovementRepo()
	_ = products.Create(&entity.Product{
		ID:              testProductID,
		Code:            "P-001",
		Name:            "Tornillo 3mm",
		Price:           decimal.NewFromFloat(1.50),
		QuantityInStock: initialStock,
		MinimumStock:    5,
		LastUpdated:     time.Now(),
		CreatedAt:       time.Now(),
	})
	runner := apptest.NewMemTxRunner(products, movements, apptest.NewMemSaleRepo())
	uc := inventory.NewMovementUseCase(runner, products, movements)
	return uc, products, movements
}

// Una entrada suma al estoque y crea el asiento correspondiente.
func TestRegisterEntrada_SumaEstoqueYCreaMovimiento(t *testing.T) {
	uc, products, movements := buildUseCase(10)

	out, err := uc.RegisterEntrada(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  7,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17), out.Product.QuantityInStock)
	assert.Equal(t, entity.MovementTypeEntrada, out.Movement.Type)
	assert.Equal(t, int64(7), out.Movement.Quantity)
	assert.Equal(t, testUserID, out.Movement.CreatedBy)

	stored, err := products.GetByID(testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), stored.QuantityInStock, "el estoque persistido debe reflejar la entrada")

	count, _ := movements.CountByProduct(testProductID)
	assert.Equal(t, int64(1), count)
}

// Una entrada sin motivo es válida (el motivo solo es obligatorio en salidas).
func TestRegisterEntrada_SinMotivoEsValida(t *testing.T) {
	uc, _, _ := buildUseCase(0)

	out, err := uc.RegisterEntrada(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Movement.Reason)
}

// Cantidad cero o negativa se rechaza antes de tocar la base.
func TestRegisterEntrada_CantidadInvalida(t *testing.T) {
	uc, _, movements := buildUseCase(10)

	_, err := uc.RegisterEntrada(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterEntrada(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, movements.Movements, "no debe quedar ningún asiento")
}

// Una salida resta del estoque; el motivo es obligatorio.
func TestRegisterSalida_RestaEstoque(t *testing.T) {
	uc, products, _ := buildUseCase(10)

	out, err := uc.RegisterSalida(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  4,
		Reason:    "venta mostrador",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.Product.QuantityInStock)
	assert.Equal(t, entity.MovementTypeSalida, out.Movement.Type)

	stored, _ := products.GetByID(testProductID)
	assert.Equal(t, int64(6), stored.QuantityInStock)
}

// Salida sin motivo (o con motivo solo de espacios) se rechaza.
func TestRegisterSalida_MotivoObligatorio(t *testing.T) {
	uc, products, movements := buildUseCase(10)

	for _, reason := range []string{"", "   "} {
		_, err := uc.RegisterSalida(context.Background(), testUserID, dto.RegisterMovementRequest{
			ProductID: testProductID,
			Quantity:  1,
			Reason:    reason,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	stored, _ := products.GetByID(testProductID)
	assert.Equal(t, int64(10), stored.QuantityInStock, "el estoque no debe cambiar")
	assert.Empty(t, movements.Movements)
}

// Salida mayor al estoque disponible falla con ErrInsufficientStock y no deja rastro:
// ni el estoque ni el libro mayor cambian (rollback).
func TestRegisterSalida_EstoqueInsuficiente_Rollback(t *testing.T) {
	uc, products, movements := buildUseCase(3)

	_, err := uc.RegisterSalida(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  5,
		Reason:    "pedido grande",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := products.GetByID(testProductID)
	assert.Equal(t, int64(3), stored.QuantityInStock, "el estoque debe quedar intacto tras el rollback")
	assert.Empty(t, movements.Movements, "no debe registrarse ningún asiento")
}

// Vaciar exactamente el estoque (salida == disponible) es válido; queda en cero.
func TestRegisterSalida_VaciaExactoElEstoque(t *testing.T) {
	uc, products, _ := buildUseCase(5)

	out, err := uc.RegisterSalida(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Quantity:  5,
		Reason:    "liquidación",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Product.QuantityInStock)

	stored, _ := products.GetByID(testProductID)
	assert.Equal(t, int64(0), stored.QuantityInStock)
}

// Movimiento sobre un producto inexistente → ErrNotFound.
func TestRegisterMovimiento_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildUseCase(10)

	_, err := uc.RegisterEntrada(context.Background(), testUserID, dto.RegisterMovementRequest{
		ProductID: "99999999-9999-9999-9999-999999999999",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Invariante del libro mayor: tras una secuencia de entradas y salidas,
// QuantityInStock == Σ entradas − Σ salidas.
func TestLibroMayor_InvarianteNetoIgualEstoque(t *testing.T) {
	uc, products, movements := buildUseCase(0)
	ctx := context.Background()

	steps := []struct {
		tipo string
		qty  int64
	}{
		{entity.MovementTypeEntrada, 20},
		{entity.MovementTypeSalida, 5},
		{entity.MovementTypeEntrada, 3},
		{entity.MovementTypeSalida, 7},
		{entity.MovementTypeSalida, 1},
	}
	for _, s := range steps {
		req := dto.RegisterMovementRequest{ProductID: testProductID, Quantity: s.qty, Reason: "ajuste"}
		var err error
		if s.tipo == entity.MovementTypeEntrada {
			_, err = uc.RegisterEntrada(ctx, testUserID, req)
		} else {
			_, err = uc.RegisterSalida(ctx, testUserID, req)
		}
		require.NoError(t, err)
	}

	stored, _ := products.GetByID(testProductID)
	assert.Equal(t, int64(10), stored.QuantityInStock)
	assert.Equal(t, stored.QuantityInStock, movements.NetQuantity(testProductID),
		"el estoque denormalizado debe coincidir con la suma neta del libro mayor")
}

// El historial devuelve los movimientos del producto, más recientes primero,
// y filtra por rango de fechas.
func TestListMovements_OrdenYFiltroDeFechas(t *testing.T) {
	uc, _, _ := buildUseCase(100)
	ctx := context.Background()

	_, err := uc.RegisterSalida(ctx, testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID, Quantity: 1, Reason: "primera",
	})
	require.NoError(t, err)
	_, err = uc.RegisterSalida(ctx, testUserID, dto.RegisterMovementRequest{
		ProductID: testProductID, Quantity: 2, Reason: "segunda",
	})
	require.NoError(t, err)

	out, err := uc.ListMovements(testProductID, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.False(t, out.Items[0].Date.Before(out.Items[1].Date), "más reciente primero")

	// Rango futuro: no debe devolver nada
	future := time.Now().Add(24 * time.Hour)
	out, err = uc.ListMovements(testProductID, &future, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	// El producto debe existir
	_, err = uc.ListMovements("99999999-9999-9999-9999-999999999999", nil, nil, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
