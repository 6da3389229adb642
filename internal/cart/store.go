package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/redis"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

// Store persists a buyer's cart as a single serialized blob. Mutations are
// whole-cart read-modify-write; there are no partial updates.
type Store interface {
	Load(ctx context.Context, buyerID string) (types.CartLines, error)
	Save(ctx context.Context, buyerID string, lines types.CartLines) error
	Delete(ctx context.Context, buyerID string) error
}

type blobKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(buyerID string) string
}

type blobStore struct {
	kv  blobKV
	ttl time.Duration
}

// NewBlobStore builds a Redis-backed cart store. A zero TTL keeps carts
// until explicitly cleared.
func NewBlobStore(kv blobKV, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv client required")
	}
	return &blobStore{kv: kv, ttl: ttl}, nil
}

func (s *blobStore) Load(ctx context.Context, buyerID string) (types.CartLines, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(buyerID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.CartLines{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var lines types.CartLines
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		// A corrupt blob is unrecoverable; start the buyer fresh rather
		// than wedging every cart operation.
		return types.CartLines{}, nil
	}
	if lines == nil {
		lines = types.CartLines{}
	}
	return lines, nil
}

func (s *blobStore) Save(ctx context.Context, buyerID string, lines types.CartLines) error {
	if len(lines) == 0 {
		return s.Delete(ctx, buyerID)
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(buyerID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *blobStore) Delete(ctx context.Context, buyerID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(buyerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
