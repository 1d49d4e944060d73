// Package redis implements the cart's durable store on a single Redis key
// holding the JSON-serialized line items.
package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/gabriel447/ProductExplorer/internal/domain"
	apperrors "github.com/gabriel447/ProductExplorer/pkg/errors"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "productexplorer:cart"

// Store persists the cart under a fixed Redis key.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a Redis-backed cart store. An empty key falls back to
// DefaultKey.
func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		client: client,
		key:    key,
	}
}

// Load reads and decodes the persisted cart. A missing key means no cart has
// been persisted yet and is not an error; a blob that fails to decode is
// reported so the caller can discard it whole.
func (s *Store) Load(ctx context.Context) (domain.CartItems, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, apperrors.Persistence(err)
	}

	var items domain.CartItems
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.Persistence(err)
	}

	return items, nil
}

// Save serializes the full item sequence to the storage key.
func (s *Store) Save(ctx context.Context, items domain.CartItems) error {
	data, err := json.Marshal(items)
	if err != nil {
		return apperrors.Persistence(err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return apperrors.Persistence(err)
	}

	return nil
}
