// Package fakestore provides the HTTP client adapter for the remote product
// catalog API (Fake Store API shape).
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabriel447/ProductExplorer/internal/domain"
	apperrors "github.com/gabriel447/ProductExplorer/pkg/errors"
)

// Getter abstracts the underlying HTTP client so the adapter can run behind
// either the plain retrying client or the circuit-breaker wrapper.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client calls the two read endpoints of the catalog API. The base URL is
// captured once at construction; if it is empty, every call fails fast with a
// configuration error instead of issuing a request to an undefined host.
type Client struct {
	baseURL string
	http    Getter
	logger  *slog.Logger
}

// New creates a catalog API client.
func New(baseURL string, httpClient Getter, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// ListProducts fetches the full product list, raw and unfiltered.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if c.baseURL == "" {
		err := apperrors.Configuration("catalog API base URL is not set")
		c.logger.ErrorContext(ctx, "list products failed", slog.String("error", err.Error()))
		return nil, err
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/products")
	if err != nil {
		appErr := apperrors.Network(err)
		c.logger.ErrorContext(ctx, "list products failed", slog.String("error", appErr.Error()))
		return nil, appErr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appErr := apperrors.Network(fmt.Errorf("unexpected status %d", resp.StatusCode))
		c.logger.ErrorContext(ctx, "list products failed", slog.String("error", appErr.Error()))
		return nil, appErr
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		appErr := apperrors.Network(fmt.Errorf("decode product list: %w", err))
		c.logger.ErrorContext(ctx, "list products failed", slog.String("error", appErr.Error()))
		return nil, appErr
	}

	return products, nil
}

// GetProduct fetches a single product by id. The API does not distinguish a
// missing product from other failures, so callers treat any error uniformly.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var product domain.Product

	if c.baseURL == "" {
		err := apperrors.Configuration("catalog API base URL is not set")
		c.logger.ErrorContext(ctx, "get product failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		return product, err
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/products/"+id)
	if err != nil {
		appErr := apperrors.Network(err)
		c.logger.ErrorContext(ctx, "get product failed",
			slog.String("product_id", id),
			slog.String("error", appErr.Error()),
		)
		return product, appErr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appErr := apperrors.Network(fmt.Errorf("unexpected status %d", resp.StatusCode))
		c.logger.ErrorContext(ctx, "get product failed",
			slog.String("product_id", id),
			slog.String("error", appErr.Error()),
		)
		return product, appErr
	}

	// The API answers unknown ids with an empty 200 body, so a decode failure
	// is folded into the same generic network error as any other rejection.
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		appErr := apperrors.Network(fmt.Errorf("decode product: %w", err))
		c.logger.ErrorContext(ctx, "get product failed",
			slog.String("product_id", id),
			slog.String("error", appErr.Error()),
		)
		return domain.Product{}, appErr
	}

	return product, nil
}
