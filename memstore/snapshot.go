package memstore

import (
	"fmt"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the wire form of a repository's state. The identity counter is
// carried alongside the records so a restored instance keeps the
// never-reuse-ids invariant.
type snapshot[T any] struct {
	NextID int64 `msgpack:"next_id"`
	Items  []T   `msgpack:"items"`
}

// Snapshot encodes the repository's records and identity counter to msgpack.
func (r *Repository[T]) Snapshot() ([]byte, error) {
	data, err := msgpack.Marshal(snapshot[T]{
		NextID: r.nextID,
		Items:  slices.Clone(r.items),
	})
	if err != nil {
		return nil, fmt.Errorf("memstore: encode snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the repository's contents with a previously taken
// snapshot. The identity counter is advanced past every restored id, so a
// snapshot from an older library version without a counter still restores
// safely.
func (r *Repository[T]) Restore(data []byte) error {
	var snap snapshot[T]
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("memstore: decode snapshot: %w", err)
	}

	next := snap.NextID
	if next < 1 {
		next = 1
	}
	for _, item := range snap.Items {
		if id := r.handlers.GetID(item); id >= next {
			next = id + 1
		}
	}

	r.items = snap.Items
	r.nextID = next
	return nil
}
