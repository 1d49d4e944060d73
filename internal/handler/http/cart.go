package http

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabriel447/ProductExplorer/internal/cart"
	"github.com/gabriel447/ProductExplorer/internal/domain"
	"github.com/gabriel447/ProductExplorer/pkg/httputil"
	"github.com/gabriel447/ProductExplorer/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	engine *cart.Engine
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(engine *cart.Engine, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		engine: engine,
		logger: logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ID          int           `json:"id" validate:"required,gt=0"`
	Title       string        `json:"title" validate:"required"`
	Price       float64       `json:"price" validate:"gte=0"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Image       string        `json:"image" validate:"omitempty,url"`
	Rating      domain.Rating `json:"rating"`
}

// UpdateQuantityRequest is the JSON request body for setting a line quantity.
// Fractional values are floored before being applied.
type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.engine.AddProduct(r.Context(), domain.Product{
		ID:          req.ID,
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Rating:      req.Rating,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productID}.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseIntParam(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.engine.SetQuantity(r.Context(), productID, int(math.Floor(req.Quantity)))

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// IncreaseItem handles POST /api/v1/cart/items/{productID}/increase.
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseIntParam(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	h.engine.IncreaseQuantity(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// DecreaseItem handles POST /api/v1/cart/items/{productID}/decrease.
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseIntParam(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	h.engine.DecreaseQuantity(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseIntParam(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	h.engine.RemoveProduct(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.engine.Snapshot()})
}
