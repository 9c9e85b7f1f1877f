package service

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"

	"gorm.io/gorm"
)

// fakeTx satisfies TxManager without a database. Callbacks receive a nil
// *gorm.DB, which the mock repositories ignore.
type fakeTx struct {
	Calls int
}

func (f *fakeTx) Transaction(fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	f.Calls++
	return fn(nil)
}

// mockProductRepo is an in-memory ProductRepository

type mockProductRepo struct {
	products map[uint]*model.Product
	nextID   uint

	PopularityRows []repository.ScoredProduct
	PopularityErr  error
	StaticRows     []repository.ScoredProduct
	StaticErr      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uint]*model.Product), nextID: 1}
}

func (m *mockProductRepo) add(p model.Product) *model.Product {
	p.ID = m.nextID
	m.nextID++
	cp := p
	m.products[cp.ID] = &cp
	return &cp
}

func (m *mockProductRepo) Create(product *model.Product) error {
	created := m.add(*product)
	product.ID = created.ID
	return nil
}

func (m *mockProductRepo) List(params repository.ProductListParams) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) FindByID(id uint) (*model.Product, error) {
	return m.FindByIDTx(nil, id)
}

func (m *mockProductRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range m.products {
		if p.SKU != nil && *p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Update(product *model.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(id uint) (int64, error) {
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	return 1, nil
}

func (m *mockProductRepo) Count() (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepo) TopByPopularity(since time.Time, limit int) ([]repository.ScoredProduct, error) {
	if m.PopularityErr != nil {
		return nil, m.PopularityErr
	}
	return m.PopularityRows, nil
}

func (m *mockProductRepo) TopByStaticScore(limit int) ([]repository.ScoredProduct, error) {
	if m.StaticErr != nil {
		return nil, m.StaticErr
	}
	return m.StaticRows, nil
}

// mockCartRepo is an in-memory CartRepository

type mockCartRepo struct {
	carts      map[uint]*model.Cart
	items      map[uint]*model.CartItem
	nextCartID uint
	nextItemID uint

	products *mockProductRepo // for joined item views

	ListItemsErr   error
	CreateItemErr  error
	DeleteItemsErr error
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{
		carts:      make(map[uint]*model.Cart),
		items:      make(map[uint]*model.CartItem),
		nextCartID: 1,
		nextItemID: 1,
		products:   products,
	}
}

func (m *mockCartRepo) FindActive(tx *gorm.DB, userID uint) (*model.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID && c.Status == model.CartActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) FindActiveForUpdate(tx *gorm.DB, userID uint) (*model.Cart, error) {
	return m.FindActive(tx, userID)
}

func (m *mockCartRepo) Create(tx *gorm.DB, cart *model.Cart) error {
	cart.ID = m.nextCartID
	m.nextCartID++
	cp := *cart
	m.carts[cp.ID] = &cp
	return nil
}

func (m *mockCartRepo) MarkConverted(tx *gorm.DB, cartID uint) error {
	c, ok := m.carts[cartID]
	if !ok {
		return errors.New("cart missing")
	}
	c.Status = model.CartConverted
	return nil
}

func (m *mockCartRepo) ListItems(tx *gorm.DB, cartID uint) ([]model.CartItem, error) {
	if m.ListItemsErr != nil {
		return nil, m.ListItemsErr
	}
	var out []model.CartItem
	for _, it := range m.items {
		if it.CartID == cartID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockCartRepo) ListItemViews(cartID uint) ([]model.CartItemView, error) {
	items, err := m.ListItems(nil, cartID)
	if err != nil {
		return nil, err
	}
	views := make([]model.CartItemView, 0, len(items))
	for _, it := range items {
		name := ""
		if m.products != nil {
			if p, err := m.products.FindByID(it.ProductID); err == nil {
				name = p.Name
			}
		}
		views = append(views, model.CartItemView{
			ProductID: it.ProductID,
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: float64(it.Quantity) * it.UnitPrice,
		})
	}
	return views, nil
}

func (m *mockCartRepo) FindItem(tx *gorm.DB, cartID, productID uint) (*model.CartItem, error) {
	for _, it := range m.items {
		if it.CartID == cartID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) CreateItem(tx *gorm.DB, item *model.CartItem) error {
	if m.CreateItemErr != nil {
		return m.CreateItemErr
	}
	item.ID = m.nextItemID
	m.nextItemID++
	cp := *item
	m.items[cp.ID] = &cp
	return nil
}

func (m *mockCartRepo) UpdateItem(tx *gorm.DB, item *model.CartItem) error {
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockCartRepo) DeleteItem(cartID, productID uint) (int64, error) {
	for id, it := range m.items {
		if it.CartID == cartID && it.ProductID == productID {
			delete(m.items, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCartRepo) DeleteItems(tx *gorm.DB, cartID uint) error {
	if m.DeleteItemsErr != nil {
		return m.DeleteItemsErr
	}
	for id, it := range m.items {
		if it.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}

// mockOrderRepo is an in-memory OrderRepository. It is mutex-guarded
// because checkout's post-commit side effects run on a goroutine.

type mockOrderRepo struct {
	mu         sync.Mutex
	orders     map[uint]*model.Order
	orderItems map[uint][]model.OrderItem
	nextID     uint

	CreateErr      error
	CreateItemsErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:     make(map[uint]*model.Order),
		orderItems: make(map[uint][]model.OrderItem),
		nextID:     1,
	}
}

func (m *mockOrderRepo) Create(tx *gorm.DB, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	order.ID = m.nextID
	m.nextID++
	cp := *order
	m.orders[cp.ID] = &cp
	return nil
}

func (m *mockOrderRepo) CreateItems(tx *gorm.DB, items []model.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateItemsErr != nil {
		return m.CreateItemsErr
	}
	for _, it := range items {
		m.orderItems[it.OrderID] = append(m.orderItems[it.OrderID], it)
	}
	return nil
}

func (m *mockOrderRepo) FindByUser(userID uint) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) FindByIDForUser(id, userID uint) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListItemViews(orderID uint) ([]model.OrderItemView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OrderItemView
	for _, it := range m.orderItems[orderID] {
		out = append(out, model.OrderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(id uint, status model.OrderStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	return 1, nil
}

func (m *mockOrderRepo) ListWithUserEmail() ([]model.AdminOrderRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AdminOrderRow
	for _, o := range m.orders {
		out = append(out, model.AdminOrderRow{
			ID:          o.ID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
		})
	}
	return out, nil
}

func (m *mockOrderRepo) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepo) Revenue() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, o := range m.orders {
		switch o.Status {
		case model.OrderPaid, model.OrderShipped, model.OrderCompleted:
			total += o.TotalAmount
		}
	}
	return total, nil
}

// mockEventRepo records appended events

type mockEventRepo struct {
	mu        sync.Mutex
	Events    []model.UserEvent
	CreateErr error
}

func (m *mockEventRepo) Create(event *model.UserEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	event.ID = uint(len(m.Events) + 1)
	m.Events = append(m.Events, *event)
	return nil
}

// Recorded returns a copy of the appended events.
func (m *mockEventRepo) Recorded() []model.UserEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.UserEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

// mockUserRepo is an in-memory UserRepository

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Create(user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[cp.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(user *model.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) ListRecent(limit int) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Count() (int64, error) {
	return int64(len(m.users)), nil
}
