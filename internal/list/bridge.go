package list

import (
	"context"
	"errors"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/store"
)

// StorageKey is the single slot the list lives under.
const StorageKey = "weighted-todo-list"

// Bridge is what the Store persists through.
type Bridge interface {
	// Load returns ok=false when nothing has been saved yet.
	Load(ctx context.Context) (actions []model.Action, ok bool, err error)
	Save(ctx context.Context, actions []model.Action) error
}

// KVBridge keeps the encoded list in a store.KV under StorageKey.
type KVBridge struct {
	kv store.KV
}

func NewKVBridge(kv store.KV) *KVBridge {
	return &KVBridge{kv: kv}
}

func (b *KVBridge) Load(ctx context.Context) ([]model.Action, bool, error) {
	raw, err := b.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	actions, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	return actions, true, nil
}

func (b *KVBridge) Save(ctx context.Context, actions []model.Action) error {
	raw, err := Encode(actions)
	if err != nil {
		return err
	}
	return b.kv.Put(ctx, StorageKey, raw)
}
