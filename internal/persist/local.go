package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

// StorageKey is the local cache key holding the layout.
const StorageKey = "unisync_dashboard_widgets"

// KV is a string-keyed byte store. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LocalStore keeps the layout as a JSON array under StorageKey.
type LocalStore struct {
	kv KV
}

func NewLocalStore(kv KV) *LocalStore {
	return &LocalStore{kv: kv}
}

// Load returns the cached layout. A missing key is ErrEmpty; undecodable
// content is a storage error.
func (s *LocalStore) Load(ctx context.Context) (grid.Layout, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, errs.NewStorageError("read layout", err)
	}
	if !ok {
		return nil, ErrEmpty
	}
	var layout grid.Layout
	if err := json.Unmarshal(raw, &layout); err != nil {
		return nil, errs.NewStorageError("decode layout", err)
	}
	return layout, nil
}

func (s *LocalStore) Store(ctx context.Context, layout grid.Layout) error {
	if layout == nil {
		layout = grid.Layout{}
	}
	raw, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, raw); err != nil {
		return errs.NewStorageError("write layout", err)
	}
	return nil
}

func (s *LocalStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return errs.NewStorageError("clear layout", err)
	}
	return nil
}
