// Package cart owns the shopping cart line items, their derived totals, and
// best-effort mirroring of every mutation to a durable store.
package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gabriel447/ProductExplorer/internal/domain"
)

// Snapshot is a consistent view of the cart and its derivations.
type Snapshot struct {
	Items      domain.CartItems `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice float64          `json:"total_price"`
}

// Engine is the cart state machine. Public operations never return errors:
// persistence failures degrade silently and the in-memory cart stays correct.
type Engine struct {
	store  Store
	logger *slog.Logger

	mu    sync.Mutex
	items domain.CartItems
}

// NewEngine creates a cart engine, restoring any previously persisted cart.
// Absent or malformed persisted data yields an empty cart, never an error.
func NewEngine(ctx context.Context, store Store, logger *slog.Logger) *Engine {
	e := &Engine{
		store:  store,
		logger: logger,
	}

	items, err := store.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "discarding persisted cart", slog.String("error", err.Error()))
		return e
	}

	// Persisted quantities are sanitized the same way SetQuantity sanitizes
	// its input: anything below 1 is coerced to 1.
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		e.items = append(e.items, item)
	}

	return e
}

// AddProduct adds one unit of the product, merging into an existing line when
// the product is already in the cart.
func (e *Engine) AddProduct(ctx context.Context, product domain.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.items.FindIndex(product.ID); i >= 0 {
		e.items[i].Quantity++
	} else {
		e.items = append(e.items, domain.CartItem{Product: product, Quantity: 1})
	}

	e.persistLocked(ctx)
}

// RemoveProduct drops the line for the given product id, if present.
func (e *Engine) RemoveProduct(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.items.FindIndex(productID)
	if i < 0 {
		return
	}
	e.items = append(e.items[:i], e.items[i+1:]...)

	e.persistLocked(ctx)
}

// SetQuantity assigns a quantity to an existing line. Values below 1 are
// coerced to 1; quantities can never go non-positive through this path.
// Absent products are a silent no-op.
func (e *Engine) SetQuantity(ctx context.Context, productID, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.items.FindIndex(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	e.items[i].Quantity = quantity

	e.persistLocked(ctx)
}

// IncreaseQuantity adds one unit to an existing line.
func (e *Engine) IncreaseQuantity(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.items.FindIndex(productID)
	if i < 0 {
		return
	}
	e.items[i].Quantity++

	e.persistLocked(ctx)
}

// DecreaseQuantity removes one unit from an existing line; decrementing a
// quantity-1 line removes it entirely.
func (e *Engine) DecreaseQuantity(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.items.FindIndex(productID)
	if i < 0 {
		return
	}
	if e.items[i].Quantity <= 1 {
		e.items = append(e.items[:i], e.items[i+1:]...)
	} else {
		e.items[i].Quantity--
	}

	e.persistLocked(ctx)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil

	e.persistLocked(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() domain.CartItems {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(domain.CartItems, len(e.items))
	copy(out, e.items)
	return out
}

// TotalItems returns the sum of quantities across all lines.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items.TotalItems()
}

// TotalPrice returns the sum of price*quantity across all lines.
func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items.TotalPrice()
}

// Snapshot returns the cart lines together with both totals.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make(domain.CartItems, len(e.items))
	copy(items, e.items)

	return Snapshot{
		Items:      items,
		TotalItems: e.items.TotalItems(),
		TotalPrice: e.items.TotalPrice(),
	}
}

// persistLocked mirrors the current items to the durable store. Failures are
// logged and swallowed; durability is best-effort only.
func (e *Engine) persistLocked(ctx context.Context) {
	items := make(domain.CartItems, len(e.items))
	copy(items, e.items)

	if err := e.store.Save(ctx, items); err != nil {
		e.logger.WarnContext(ctx, "cart persistence failed", slog.String("error", err.Error()))
	}
}
