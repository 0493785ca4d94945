package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is a flat key/value backend holding JSON-encoded collections. Every
// mutation is a whole-collection overwrite; there is no partial update
// primitive, matching the single-writer model the data volumes imply.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CorruptError reports an unparseable persisted collection. Callers get a
// typed error instead of a panic from a blind unmarshal.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt collection %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// IsCorrupt reports whether err carries a CorruptError.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// ReadCollection loads and decodes the collection stored under key. A missing
// key reads as an empty collection; collection order is preserved.
func ReadCollection[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}
	return records, nil
}

// WriteCollection serializes records and overwrites the collection under key.
func WriteCollection[T any](ctx context.Context, s Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}
