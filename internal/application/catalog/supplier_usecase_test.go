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

// productWithCategory arma un producto mínimo para los tests de integridad referencial.
func productWithCategory(code, name string, categoryID *string) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:           "prod-" + code,
		Code:         code,
		Name:         name,
		Price:        decimal.Zero,
		MinimumStock: 5,
		CategoryID:   categoryID,
		LastUpdated:  now,
		CreatedAt:    now,
	}
}

func productWithSupplier(code, name string, supplierID *string) *entity.Product {
	p := productWithCategory(code, name, nil)
	p.SupplierID = supplierID
	return p
}

func buildSupplierUseCase() (*catalog.SupplierUseCase, *apptest.MemProductRepo) {
	products := apptest.NewMemProductRepo()
	return catalog.NewSupplierUseCase(apptest.NewMemSupplierRepo(), products), products
}

func TestCreateSupplier_NombreDuplicado(t *testing.T) {
	uc, _ := buildSupplierUseCase()

	_, err := uc.Create(dto.CreateSupplierRequest{Name: "Aceros SA", ContactInfo: "ventas@aceros.example"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateSupplierRequest{Name: "Aceros SA"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateSupplier_NombreVacio(t *testing.T) {
	uc, _ := buildSupplierUseCase()
	_, err := uc.Create(dto.CreateSupplierRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Update con campos puntero: solo cambia lo enviado.
func TestUpdateSupplier_CamposParciales(t *testing.T) {
	uc, _ := buildSupplierUseCase()

	s, err := uc.Create(dto.CreateSupplierRequest{Name: "Maderas del Sur", ContactInfo: "tel 555-0100"})
	require.NoError(t, err)

	contact := "tel 555-0200"
	out, err := uc.Update(s.ID, dto.UpdateSupplierRequest{ContactInfo: &contact})
	require.NoError(t, err)
	assert.Equal(t, "Maderas del Sur", out.Name, "el nombre no enviado no debe cambiar")
	assert.Equal(t, "tel 555-0200", out.ContactInfo)
}

func TestUpdateSupplier_NombreDeOtro(t *testing.T) {
	uc, _ := buildSupplierUseCase()

	_, err := uc.Create(dto.CreateSupplierRequest{Name: "Uno"})
	require.NoError(t, err)
	b, err := uc.Create(dto.CreateSupplierRequest{Name: "Dos"})
	require.NoError(t, err)

	uno := "Uno"
	_, err = uc.Update(b.ID, dto.UpdateSupplierRequest{Name: &uno})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

// Borrar un proveedor con productos asociados está bloqueado.
func TestDeleteSupplier_ConProductos(t *testing.T) {
	uc, products := buildSupplierUseCase()

	s, err := uc.Create(dto.CreateSupplierRequest{Name: "Tornillos SRL"})
	require.NoError(t, err)

	supID := s.ID
	require.NoError(t, products.Create(productWithSupplier("T-1", "Tornillo", &supID)))

	err = uc.Delete(s.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestDeleteSupplier_SinProductos(t *testing.T) {
	uc, _ := buildSupplierUseCase()

	s, err := uc.Create(dto.CreateSupplierRequest{Name: "Efímero"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(s.ID))

	list, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
