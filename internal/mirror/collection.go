package mirror

import (
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Collection mirrors one entity collection. Elements are stored under
// sequence-numbered keys so All returns them in the order the authoritative
// store listed them.
type Collection[T any] struct {
	store  *Store
	prefix string
}

// NewCollection creates a Collection for type T under the given key prefix.
func NewCollection[T any](s *Store, prefix string) *Collection[T] {
	return &Collection[T]{store: s, prefix: prefix}
}

// elementKey builds the key for position i. Zero-padded so lexicographic
// key order matches numeric order.
func (c *Collection[T]) elementKey(i int) []byte {
	return fmt.Appendf(nil, "%s%08d", c.prefix, i)
}

// ReplaceAll atomically replaces the mirrored collection with the given
// snapshot.
func (c *Collection[T]) ReplaceAll(ctx context.Context, elements []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		// Drop the previous snapshot.
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete stale element: %w", err)
			}
		}

		for i, el := range elements {
			data, err := json.Marshal(el)
			if err != nil {
				return fmt.Errorf("marshal element: %w", err)
			}
			if err := txn.Set(c.elementKey(i), data); err != nil {
				return fmt.Errorf("set element: %w", err)
			}
		}

		return nil
	})
}

// All returns the mirrored snapshot in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elements := []T{}
	err := c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
			var el T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &el)
			})
			if err != nil {
				return fmt.Errorf("unmarshal element: %w", err)
			}
			elements = append(elements, el)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return elements, nil
}

// Len returns the number of mirrored elements.
func (c *Collection[T]) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
