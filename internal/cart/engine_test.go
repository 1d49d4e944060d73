package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriel447/ProductExplorer/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct(id int, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    "Product",
		Price:    price,
		Category: "misc",
		Rating:   domain.Rating{Rate: 4.0, Count: 10},
	}
}

func newTestEngine(t *testing.T) (*Engine, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewEngine(context.Background(), store, testLogger()), store
}

func TestAddProduct_MergesByProductID(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := testProduct(1, 9.99)

	for i := 0; i < 5; i++ {
		e.AddProduct(ctx, p)
	}

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, e.TotalItems())
}

func TestAddProduct_PreservesInsertionOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	e.AddProduct(ctx, testProduct(3, 1))
	e.AddProduct(ctx, testProduct(1, 1))
	e.AddProduct(ctx, testProduct(2, 1))
	e.AddProduct(ctx, testProduct(1, 1))

	items := e.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 3, items[0].Product.ID)
	assert.Equal(t, 1, items[1].Product.ID)
	assert.Equal(t, 2, items[2].Product.ID)
}

func TestRemoveProduct(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	e.AddProduct(ctx, testProduct(1, 1))
	e.AddProduct(ctx, testProduct(2, 1))

	e.RemoveProduct(ctx, 1)
	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Product.ID)

	// Removing an absent product is a silent no-op.
	e.RemoveProduct(ctx, 42)
	assert.Len(t, e.Items(), 1)
}

func TestSetQuantity_CoercesBelowOne(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := testProduct(1, 5)

	e.AddProduct(ctx, p)
	e.AddProduct(ctx, p)
	require.Equal(t, 2, e.TotalItems())

	e.SetQuantity(ctx, p.ID, 0)

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	e.SetQuantity(ctx, p.ID, -7)
	assert.Equal(t, 1, e.Items()[0].Quantity)

	e.SetQuantity(ctx, p.ID, 4)
	assert.Equal(t, 4, e.Items()[0].Quantity)
}

func TestSetQuantity_AbsentProductNoOp(t *testing.T) {
	e, _ := newTestEngine(t)

	e.SetQuantity(context.Background(), 99, 3)
	assert.Empty(t, e.Items())
}

func TestIncreaseDecreaseQuantity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := testProduct(1, 2)

	e.AddProduct(ctx, p)
	e.IncreaseQuantity(ctx, p.ID)
	e.IncreaseQuantity(ctx, p.ID)
	assert.Equal(t, 3, e.Items()[0].Quantity)

	e.DecreaseQuantity(ctx, p.ID)
	assert.Equal(t, 2, e.Items()[0].Quantity)

	// Increase/decrease on absent ids are no-ops.
	e.IncreaseQuantity(ctx, 42)
	e.DecreaseQuantity(ctx, 42)
	assert.Equal(t, 2, e.Items()[0].Quantity)
}

func TestDecreaseQuantity_RemovesAtOne(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	p := testProduct(1, 2)

	e.AddProduct(ctx, p)
	require.Equal(t, 1, e.Items()[0].Quantity)

	e.DecreaseQuantity(ctx, p.ID)
	assert.Empty(t, e.Items())

	// The cart never holds a line with quantity below 1.
	for _, item := range e.Items() {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestClear(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	e.AddProduct(ctx, testProduct(1, 1))
	e.AddProduct(ctx, testProduct(2, 1))
	e.Clear(ctx)

	assert.Empty(t, e.Items())
	assert.Zero(t, e.TotalItems())
	assert.Zero(t, e.TotalPrice())
}

func TestTotals(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	e.AddProduct(ctx, testProduct(1, 10.50))
	e.AddProduct(ctx, testProduct(1, 10.50))
	e.AddProduct(ctx, testProduct(2, 3.25))

	assert.Equal(t, 3, e.TotalItems())
	assert.InDelta(t, 24.25, e.TotalPrice(), 1e-9)

	snap := e.Snapshot()
	assert.Equal(t, 3, snap.TotalItems)
	assert.InDelta(t, 24.25, snap.TotalPrice, 1e-9)
	assert.Len(t, snap.Items, 2)
}

func TestPersistence_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := NewEngine(ctx, store, testLogger())
	first.AddProduct(ctx, testProduct(1, 9.99))
	first.AddProduct(ctx, testProduct(1, 9.99))
	first.AddProduct(ctx, testProduct(2, 1.50))

	// A new engine built over the same store reproduces the cart.
	second := NewEngine(ctx, store, testLogger())
	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestNewEngine_SanitizesLoadedQuantities(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.CartItems{
		{Product: testProduct(1, 1), Quantity: 0},
		{Product: testProduct(2, 1), Quantity: -4},
		{Product: testProduct(3, 1), Quantity: 7},
	}))

	e := NewEngine(ctx, store, testLogger())

	items := e.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 7, items[2].Quantity)
}

// faultyStore fails on demand to verify best-effort persistence semantics.
type faultyStore struct {
	loadErr error
	saveErr error
	saved   domain.CartItems
}

func (s *faultyStore) Load(ctx context.Context) (domain.CartItems, error) {
	return s.saved, s.loadErr
}

func (s *faultyStore) Save(ctx context.Context, items domain.CartItems) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = items
	return nil
}

func TestNewEngine_MalformedPersistedDataYieldsEmptyCart(t *testing.T) {
	store := &faultyStore{loadErr: errors.New("unmarshal cart items: invalid character")}

	e := NewEngine(context.Background(), store, testLogger())
	assert.Empty(t, e.Items())
}

func TestMutations_SwallowStoreFailures(t *testing.T) {
	store := &faultyStore{saveErr: errors.New("redis down")}
	ctx := context.Background()
	e := NewEngine(ctx, store, testLogger())

	e.AddProduct(ctx, testProduct(1, 5))
	e.IncreaseQuantity(ctx, 1)
	e.Clear(ctx)
	e.AddProduct(ctx, testProduct(2, 3))

	// The in-memory cart stays correct even though every write failed.
	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Product.ID)
	assert.Equal(t, 1, e.TotalItems())
}
