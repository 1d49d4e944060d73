package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gabriel447/ProductExplorer/internal/catalog"
	"github.com/gabriel447/ProductExplorer/internal/domain"
	"github.com/gabriel447/ProductExplorer/pkg/httputil"
)

// ProductGetter fetches a single product from the remote catalog API.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	engine *catalog.Engine
	client ProductGetter
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(engine *catalog.Engine, client ProductGetter, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		engine: engine,
		client: client,
		logger: logger,
	}
}

// ListResponse is the JSON payload for the product listing endpoint.
type ListResponse struct {
	httputil.PaginatedResponse[domain.Product]
	SearchTerm string   `json:"search_term"`
	Category   string   `json:"category"`
	SortKey    string   `json:"sort_key"`
	Categories []string `json:"categories"`
	IsLoading  bool     `json:"is_loading"`
	LastError  string   `json:"last_error,omitempty"`
}

func listResponseFrom(snap catalog.Snapshot) ListResponse {
	return ListResponse{
		PaginatedResponse: httputil.NewPaginatedResponse(snap.Products, snap.TotalCount, snap.Page, snap.PageSize),
		SearchTerm:        snap.SearchTerm,
		Category:          snap.Category,
		SortKey:           string(snap.SortKey),
		Categories:        snap.Categories,
		IsLoading:         snap.IsLoading,
		LastError:         snap.LastError,
	}
}

// ListProducts handles GET /api/v1/products. Query parameters are forwarded
// into the engine mutators before the page is derived.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("search") {
		h.engine.SetSearchTerm(query.Get("search"))
	}
	if query.Has("category") {
		h.engine.SetCategory(query.Get("category"))
	}
	if query.Has("sort") {
		key, err := catalog.ParseSortKey(query.Get("sort"))
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: err.Error()},
			})
			return
		}
		h.engine.SetSortKey(key)
	}
	if query.Has("page_size") {
		size, err := strconv.Atoi(query.Get("page_size"))
		if err != nil || size < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page_size must be a positive integer"},
			})
			return
		}
		h.engine.SetPageSize(size)
	}
	// Page is applied last so it is validated against the updated filters.
	if query.Has("page") {
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be an integer"},
			})
			return
		}
		h.engine.SetPage(page)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: listResponseFrom(h.engine.Snapshot())})
}

// Refresh handles POST /api/v1/products/refresh. A fetch failure is not an
// HTTP error: it surfaces as last_error in the returned state.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.engine.Fetch(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: listResponseFrom(h.engine.Snapshot())})
}

// GetProduct handles GET /api/v1/products/{productID}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	product, err := h.client.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap.Categories})
}
