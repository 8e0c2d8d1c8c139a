// Package apptest provee repositorios en memoria y un TxRunner falso para
// probar los casos de uso sin PostgreSQL. El TxRunner falso imita la semántica
// de Commit/Rollback tomando un snapshot del estado antes de ejecutar el
// callback y restaurándolo si este falla.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/estoque-pro/estoque-api/internal/domain"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// ── Productos ─────────────────────────────────────────────────────────────────

// MemProductRepo implementación en memoria de repository.ProductRepository.
type MemProductRepo struct {
	byID map[string]*entity.Product
}

var _ repository.ProductRepository = (*MemProductRepo)(nil)

// NewMemProductRepo construye el repo vacío.
func NewMemProductRepo() *MemProductRepo {
	return &MemProductRepo{byID: make(map[string]*entity.Product)}
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (r *MemProductRepo) Create(product *entity.Product) error {
	for _, p := range r.byID {
		if p.Code == product.Code {
			return domain.ErrDuplicateName
		}
	}
	r.byID[product.ID] = cloneProduct(product)
	return nil
}

func (r *MemProductRepo) GetByID(id string) (*entity.Product, error) {
	return cloneProduct(r.byID[id]), nil
}

func (r *MemProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate en memoria no bloquea nada; devuelve lo mismo que GetByID.
func (r *MemProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *MemProductRepo) Update(product *entity.Product) error {
	stored, ok := r.byID[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneProduct(product)
	// Igual que el UPDATE real: no toca quantity_in_stock
	c.QuantityInStock = stored.QuantityInStock
	r.byID[product.ID] = c
	return nil
}

func (r *MemProductRepo) UpdateStock(productID string, quantity int64) error {
	stored, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.QuantityInStock = quantity
	stored.LastUpdated = time.Now()
	return nil
}

func (r *MemProductRepo) ListByName(limit, offset int) ([]*entity.Product, error) {
	list := r.sortedByName()
	return pageSlice(list, limit, offset), nil
}

func (r *MemProductRepo) ListLowStock() ([]*entity.Product, error) {
	var low []*entity.Product
	for _, p := range r.sortedByName() {
		if p.QuantityInStock <= p.MinimumStock {
			low = append(low, p)
		}
	}
	return low, nil
}

func (r *MemProductRepo) CountByCategory(categoryID string) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MemProductRepo) CountBySupplier(supplierID string) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *MemProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *MemProductRepo) sortedByName() []*entity.Product {
	list := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (r *MemProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(r.byID))
	for id, p := range r.byID {
		snap[id] = cloneProduct(p)
	}
	return snap
}

func (r *MemProductRepo) restore(snap map[string]*entity.Product) {
	r.byID = snap
}

func pageSlice[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// MemMovementRepo implementación en memoria de repository.StockMovementRepository.
type MemMovementRepo struct {
	Movements []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*MemMovementRepo)(nil)

// NewMemMovementRepo construye el repo vacío.
func NewMemMovementRepo() *MemMovementRepo {
	return &MemMovementRepo{}
}

func (r *MemMovementRepo) Create(movement *entity.StockMovement) error {
	c := *movement
	r.Movements = append(r.Movements, &c)
	return nil
}

func (r *MemMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.Movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.Movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		c := *m
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return pageSlice(list, limit, offset), nil
}

func (r *MemMovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, m := range r.Movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// NetQuantity devuelve la suma neta del libro mayor para un producto
// (Σ entradas − Σ salidas). Útil para verificar el invariante contra
// QuantityInStock.
func (r *MemMovementRepo) NetQuantity(productID string) int64 {
	var net int64
	for _, m := range r.Movements {
		if m.ProductID != productID {
			continue
		}
		switch m.Type {
		case entity.MovementTypeEntrada:
			net += m.Quantity
		case entity.MovementTypeSalida:
			net -= m.Quantity
		}
	}
	return net
}

func (r *MemMovementRepo) snapshot() []*entity.StockMovement {
	snap := make([]*entity.StockMovement, len(r.Movements))
	copy(snap, r.Movements)
	return snap
}

func (r *MemMovementRepo) restore(snap []*entity.StockMovement) {
	r.Movements = snap
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// MemSaleRepo implementación en memoria de repository.SaleRepository.
type MemSaleRepo struct {
	sales map[string]*entity.Sale
	items []*entity.SaleItem
}

var _ repository.SaleRepository = (*MemSaleRepo)(nil)

// NewMemSaleRepo construye el repo vacío.
func NewMemSaleRepo() *MemSaleRepo {
	return &MemSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *MemSaleRepo) Create(sale *entity.Sale) error {
	c := *sale
	c.Items = nil
	r.sales[sale.ID] = &c
	return nil
}

func (r *MemSaleRepo) CreateItem(item *entity.SaleItem) error {
	c := *item
	r.items = append(r.items, &c)
	return nil
}

func (r *MemSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	c := *s
	for _, it := range r.items {
		if it.SaleID == id {
			ic := *it
			c.Items = append(c.Items, &ic)
		}
	}
	return &c, nil
}

func (r *MemSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	ids := make([]string, 0, len(r.sales))
	for id := range r.sales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.sales[ids[i]].Date.After(r.sales[ids[j]].Date)
	})
	var list []*entity.Sale
	for _, id := range ids {
		s, _ := r.GetByID(id)
		list = append(list, s)
	}
	return pageSlice(list, limit, offset), nil
}

func (r *MemSaleRepo) CountItemsByProduct(productID string) (int64, error) {
	var n int64
	for _, it := range r.items {
		if it.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *MemSaleRepo) Delete(id string) error {
	delete(r.sales, id)
	var kept []*entity.SaleItem
	for _, it := range r.items {
		if it.SaleID != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

func (r *MemSaleRepo) snapshot() (map[string]*entity.Sale, []*entity.SaleItem) {
	sales := make(map[string]*entity.Sale, len(r.sales))
	for id, s := range r.sales {
		c := *s
		sales[id] = &c
	}
	items := make([]*entity.SaleItem, len(r.items))
	copy(items, r.items)
	return sales, items
}

func (r *MemSaleRepo) restore(sales map[string]*entity.Sale, items []*entity.SaleItem) {
	r.sales = sales
	r.items = items
}

// ── Categorías y proveedores ──────────────────────────────────────────────────

// MemCategoryRepo implementación en memoria de repository.CategoryRepository.
type MemCategoryRepo struct {
	byID map[string]*entity.Category
}

var _ repository.CategoryRepository = (*MemCategoryRepo)(nil)

// NewMemCategoryRepo construye el repo vacío.
func NewMemCategoryRepo() *MemCategoryRepo {
	return &MemCategoryRepo{byID: make(map[string]*entity.Category)}
}

func (r *MemCategoryRepo) Create(category *entity.Category) error {
	for _, c := range r.byID {
		if c.Name == category.Name {
			return domain.ErrDuplicateName
		}
	}
	c := *category
	r.byID[category.ID] = &c
	return nil
}

func (r *MemCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *MemCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *MemCategoryRepo) Update(category *entity.Category) error {
	if _, ok := r.byID[category.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *category
	r.byID[category.ID] = &c
	return nil
}

func (r *MemCategoryRepo) ListByName() ([]*entity.Category, error) {
	list := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		cc := *c
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MemCategoryRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// MemSupplierRepo implementación en memoria de repository.SupplierRepository.
type MemSupplierRepo struct {
	byID map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*MemSupplierRepo)(nil)

// NewMemSupplierRepo construye el repo vacío.
func NewMemSupplierRepo() *MemSupplierRepo {
	return &MemSupplierRepo{byID: make(map[string]*entity.Supplier)}
}

func (r *MemSupplierRepo) Create(supplier *entity.Supplier) error {
	for _, s := range r.byID {
		if s.Name == supplier.Name {
			return domain.ErrDuplicateName
		}
	}
	s := *supplier
	r.byID[supplier.ID] = &s
	return nil
}

func (r *MemSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	sc := *s
	return &sc, nil
}

func (r *MemSupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	for _, s := range r.byID {
		if s.Name == name {
			sc := *s
			return &sc, nil
		}
	}
	return nil, nil
}

func (r *MemSupplierRepo) Update(supplier *entity.Supplier) error {
	if _, ok := r.byID[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	s := *supplier
	r.byID[supplier.ID] = &s
	return nil
}

func (r *MemSupplierRepo) ListByName() ([]*entity.Supplier, error) {
	list := make([]*entity.Supplier, 0, len(r.byID))
	for _, s := range r.byID {
		sc := *s
		list = append(list, &sc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MemSupplierRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// MemUserRepo implementación en memoria de repository.UserRepository.
type MemUserRepo struct {
	byID map[string]*entity.User
}

var _ repository.UserRepository = (*MemUserRepo)(nil)

// NewMemUserRepo construye el repo vacío.
func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: make(map[string]*entity.User)}
}

func (r *MemUserRepo) Create(user *entity.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return domain.ErrDuplicateName
		}
	}
	u := *user
	r.byID[user.ID] = &u
	return nil
}

func (r *MemUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	uc := *u
	return &uc, nil
}

func (r *MemUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			uc := *u
			return &uc, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) Update(user *entity.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrNotFound
	}
	u := *user
	r.byID[user.ID] = &u
	return nil
}

func (r *MemUserRepo) List(limit, offset int) ([]*entity.User, error) {
	list := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		uc := *u
		list = append(list, &uc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return pageSlice(list, limit, offset), nil
}

// ── TxRunner falso ────────────────────────────────────────────────────────────

// MemTxRunner imita inventory.TxRunner y sales.SaleTxRunner sobre los repos en
// memoria: snapshot antes del callback, restore si falla (rollback).
type MemTxRunner struct {
	Products  *MemProductRepo
	Movements *MemMovementRepo
	Sales     *MemSaleRepo
}

// NewMemTxRunner construye el runner sobre los repos dados.
func NewMemTxRunner(products *MemProductRepo, movements *MemMovementRepo, sales *MemSaleRepo) *MemTxRunner {
	return &MemTxRunner{Products: products, Movements: movements, Sales: sales}
}

// Run ejecuta fn; si falla, restaura productos y movimientos al estado previo.
func (r *MemTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	pSnap := r.Products.snapshot()
	mSnap := r.Movements.snapshot()
	if err := fn(r.Products, r.Movements); err != nil {
		r.Products.restore(pSnap)
		r.Movements.restore(mSnap)
		return err
	}
	return nil
}

// RunSale ejecuta fn; si falla, restaura también las ventas.
func (r *MemTxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	pSnap := r.Products.snapshot()
	mSnap := r.Movements.snapshot()
	sSnap, iSnap := r.Sales.snapshot()
	if err := fn(r.Products, r.Movements, r.Sales); err != nil {
		r.Products.restore(pSnap)
		r.Movements.restore(mSnap)
		r.Sales.restore(sSnap, iSnap)
		return err
	}
	return nil
}
