package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"buildmart/internal/domain/model"
	repo "buildmart/internal/repository"
	"buildmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// TxManager / Repos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.Repos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.Repos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type ReposMock struct {
	catalog    repo.CatalogRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	inventory  repo.InventoryRepository
}

func (r *ReposMock) Catalog() repo.CatalogRepository      { return r.catalog }
func (r *ReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *ReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *ReposMock) Inventory() repo.InventoryRepository  { return r.inventory }

// =====================
// Repository mocks
// =====================

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) FindByID(ctx context.Context, id string) (model.CatalogItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.CatalogItem)
	return it, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListReservations(ctx context.Context, itemID string, statuses []model.OrderStatus) ([]model.OrderItem, error) {
	args := m.Called(ctx, itemID, statuses)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error) {
	args := m.Called(ctx, itemID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, itemID string, qty int64) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

// =====================
// その他の部品
// =====================

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrderCreated(ctx context.Context, order model.Order, items []model.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 連番ID（テストで予測できるように）
type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

var testNow = time.Date(2026, time.December, 1, 9, 0, 0, 0, time.UTC)

func dec(t *testing.T, d int) *time.Time {
	t.Helper()
	v := time.Date(2026, time.December, d, 0, 0, 0, 0, time.UTC)
	return &v
}

// =====================
// Helper: error kind / contains
// =====================

func assertErrKind(t *testing.T, err error, kind usecase.ErrorKind) *usecase.Error {
	t.Helper()
	e, ok := usecase.AsError(err)
	require.True(t, ok, "err=%v", err)
	assert.Equal(t, kind, e.Kind)
	return e
}

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
