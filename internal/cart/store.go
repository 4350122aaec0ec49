package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/redis"
)

// Store persists cart blobs in Redis with a sliding TTL. Every mutation writes
// the whole blob back, which gives the same last-write-wins semantics the
// device-local store had.
type Store struct {
	blobs redis.BlobStore
	ttl   time.Duration
}

// NewStore builds the cart persistence layer.
func NewStore(blobs redis.BlobStore, ttl time.Duration) (*Store, error) {
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "blob store required")
	}
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart ttl must be positive")
	}
	return &Store{blobs: blobs, ttl: ttl}, nil
}

// Load returns the cart stored under token, or an empty cart on a miss.
func (s *Store) Load(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}

	raw, err := s.blobs.Get(ctx, s.blobs.CartKey(token))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{Token: token}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// a corrupt blob is unrecoverable; start the shopper fresh
		return &Cart{Token: token}, nil
	}
	cart.Token = token
	return &cart, nil
}

// Save writes the cart blob and refreshes its TTL.
func (s *Store) Save(ctx context.Context, cart *Cart) error {
	if cart == nil || cart.Token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	cart.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.blobs.Set(ctx, s.blobs.CartKey(cart.Token), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

// Delete drops the cart blob. Deleting an absent cart is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	if err := s.blobs.Del(ctx, s.blobs.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
