// Package catalog owns the fetched product list and the UI-selected filter,
// sort, and pagination parameters, deriving the visible page through a pure
// transformation pipeline.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel447/ProductExplorer/internal/domain"
)

// SortKey selects the ordering applied to the filtered product list.
type SortKey string

const (
	SortPriceAscending  SortKey = "price-asc"
	SortPriceDescending SortKey = "price-desc"
	SortBestRated       SortKey = "best-rated"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "all"

// DefaultPageSize is the number of products shown per page by default.
const DefaultPageSize = 12

// FetchErrorMessage is the only error text ever exposed to presentation;
// the underlying cause goes to the log.
const FetchErrorMessage = "Unable to load products. Please try again."

// ParseSortKey converts a raw string into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortPriceAscending, SortPriceDescending, SortBestRated:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ProductLister is the slice of the catalog API client the engine depends on.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Snapshot is a consistent view of the engine state plus its derivations,
// taken atomically with respect to concurrent mutators.
type Snapshot struct {
	Products   []domain.Product `json:"products"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	SearchTerm string           `json:"search_term"`
	Category   string           `json:"category"`
	SortKey    SortKey          `json:"sort_key"`
	Categories []string         `json:"categories"`
	IsLoading  bool             `json:"is_loading"`
	LastError  string           `json:"last_error,omitempty"`
}

// Engine is the catalog state machine. All exported methods are safe for
// concurrent use; no caller ever observes a half-applied transition.
type Engine struct {
	client ProductLister
	logger *slog.Logger

	mu         sync.Mutex
	products   []domain.Product
	searchTerm string
	category   string
	sortKey    SortKey
	pageSize   int
	page       int
	loading    bool
	lastError  string
	fetchSeq   uint64
}

// NewEngine creates a catalog engine with default parameters and no products.
func NewEngine(client ProductLister, logger *slog.Logger) *Engine {
	return &Engine{
		client:   client,
		logger:   logger,
		category: CategoryAll,
		sortKey:  SortBestRated,
		pageSize: DefaultPageSize,
	}
}

// Fetch loads the product list from the remote API. Any failure is converted
// into the fixed user-facing message; the cause is only logged. Responses of
// superseded fetches are discarded so a late reply cannot overwrite the state
// installed by a newer one.
func (e *Engine) Fetch(ctx context.Context) {
	e.mu.Lock()
	e.loading = true
	e.lastError = ""
	e.fetchSeq++
	seq := e.fetchSeq
	e.mu.Unlock()

	products, err := e.client.ListProducts(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.fetchSeq {
		e.logger.DebugContext(ctx, "discarding stale fetch response",
			slog.Uint64("seq", seq),
			slog.Uint64("current", e.fetchSeq),
		)
		return
	}

	e.loading = false
	e.page = 0

	if err != nil {
		e.lastError = FetchErrorMessage
		e.logger.ErrorContext(ctx, "catalog fetch failed", slog.String("error", err.Error()))
		return
	}

	e.products = products
	e.logger.InfoContext(ctx, "catalog fetched", slog.Int("count", len(products)))
}

// SetSearchTerm updates the search filter and resets pagination.
func (e *Engine) SetSearchTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchTerm = term
	e.page = 0
}

// SetCategory updates the category filter and resets pagination.
func (e *Engine) SetCategory(category string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.category = category
	e.page = 0
}

// SetSortKey updates the sort order and resets pagination.
func (e *Engine) SetSortKey(key SortKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortKey = key
	e.page = 0
}

// SetPageSize updates the page size and resets pagination.
func (e *Engine) SetPageSize(size int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageSize = size
	e.page = 0
}

// SetPage moves to the given page. Out-of-range values are ignored.
func (e *Engine) SetPage(page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if page < 0 || page >= e.totalPagesLocked() {
		return
	}
	e.page = page
}

// NextPage advances one page, clamping silently at the last page.
func (e *Engine) NextPage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.page+1 < e.totalPagesLocked() {
		e.page++
	}
}

// PrevPage goes back one page, clamping silently at the first page.
func (e *Engine) PrevPage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.page > 0 {
		e.page--
	}
}

// Snapshot derives the displayed page and related values from current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	filtered := filterProducts(e.products, e.searchTerm, e.category)
	sortProducts(filtered, e.sortKey)

	return Snapshot{
		Products:   paginate(filtered, e.page, e.pageSize),
		TotalCount: len(filtered),
		TotalPages: totalPages(len(filtered), e.pageSize),
		Page:       e.page,
		PageSize:   e.pageSize,
		SearchTerm: e.searchTerm,
		Category:   e.category,
		SortKey:    e.sortKey,
		Categories: distinctCategories(e.products),
		IsLoading:  e.loading,
		LastError:  e.lastError,
	}
}

func (e *Engine) totalPagesLocked() int {
	filtered := filterProducts(e.products, e.searchTerm, e.category)
	return totalPages(len(filtered), e.pageSize)
}

// filterProducts applies the search and category filters, returning a fresh
// slice so the sort never mutates the engine's product list.
func filterProducts(products []domain.Product, searchTerm, category string) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		if category != CategoryAll && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// sortProducts orders the slice in place per the sort key. Best-rated compares
// ratings rounded to the nearest star, breaking ties by review count.
func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAscending:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDescending:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortBestRated:
		sort.SliceStable(products, func(i, j int) bool {
			ri := math.Round(products[i].Rating.Rate)
			rj := math.Round(products[j].Rating.Rate)
			if ri != rj {
				return ri > rj
			}
			return products[i].Rating.Count > products[j].Rating.Count
		})
	}
}

// paginate returns the page slice, or an empty slice when out of range.
func paginate(products []domain.Product, page, pageSize int) []domain.Product {
	if pageSize <= 0 {
		return []domain.Product{}
	}
	start := page * pageSize
	if start < 0 || start >= len(products) {
		return []domain.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	out := make([]domain.Product, end-start)
	copy(out, products[start:end])
	return out
}

func totalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// distinctCategories returns the sorted set of category values across the
// full fetched list, regardless of active filters.
func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}
