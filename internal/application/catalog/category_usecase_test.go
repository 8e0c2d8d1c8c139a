package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoque-pro/estoque-api/internal/application/apptest"
	"github.com/estoque-pro/estoque-api/internal/application/catalog"
	"github.com/estoque-pro/estoque-api/internal/application/dto"
	"github.com/estoque-pro/estoque-api/internal/domain"
)

func buildCategoryUseCase() (*catalog.CategoryUseCase, *apptest.MemProductRepo) {
	products := apptest.NewMemProductRepo()
	return catalog.NewCategoryUseCase(apptest.NewMemCategoryRepo(), products), products
}

func TestCreateCategory_NombreDuplicado(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateCategory_NombreVacio(t *testing.T) {
	uc, _ := buildCategoryUseCase()
	_, err := uc.Create(dto.CreateCategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCategory_RenombrarYChocar(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	a, err := uc.Create(dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Electricidad"})
	require.NoError(t, err)

	// Renombrar a un nombre libre funciona
	out, err := uc.Update(a.ID, dto.UpdateCategoryRequest{Name: "Pinturas y barnices"})
	require.NoError(t, err)
	assert.Equal(t, "Pinturas y barnices", out.Name)

	// Renombrar al nombre de otra choca
	_, err = uc.Update(a.ID, dto.UpdateCategoryRequest{Name: "Electricidad"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestUpdateCategory_Inexistente(t *testing.T) {
	uc, _ := buildCategoryUseCase()
	_, err := uc.Update("99999999-9999-9999-9999-999999999999", dto.UpdateCategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Borrar una categoría con productos asociados está bloqueado.
func TestDeleteCategory_ConProductos(t *testing.T) {
	uc, products := buildCategoryUseCase()

	cat, err := uc.Create(dto.CreateCategoryRequest{Name: "Jardinería"})
	require.NoError(t, err)

	catID := cat.ID
	require.NoError(t, products.Create(productWithCategory("J-1", "Pala", &catID)))

	err = uc.Delete(cat.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestDeleteCategory_SinProductos(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	cat, err := uc.Create(dto.CreateCategoryRequest{Name: "Temporal"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(cat.ID))

	list, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListCategories_OrdenadasPorNombre(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	for _, name := range []string{"Zinc", "Aluminio", "Madera"} {
		_, err := uc.Create(dto.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Aluminio", list[0].Name)
	assert.Equal(t, "Madera", list[1].Name)
	assert.Equal(t, "Zinc", list[2].Name)
}
