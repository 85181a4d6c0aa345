package store

import "context"

// ModelHandlers carries the identity accessors a repository needs for a
// record type. Go generics cannot constrain on struct fields, so identity
// access is injected as a pair of functions instead.
type ModelHandlers[T any] struct {
	// GetID returns the record's numeric identity. Zero means unassigned.
	GetID func(record T) int64

	// SetID returns a copy of the record with the identity applied.
	SetID func(record T, id int64) T
}

// Valid reports whether both handlers are present.
func (h ModelHandlers[T]) Valid() bool {
	return h.GetID != nil && h.SetID != nil
}

// Repository is the service-layer contract shared by the in-memory and
// SQL-backed stores. "Not found" is reported through the boolean sentinel,
// never through the error; errors are reserved for backend and context
// failures. Implementations are expected to be safe for concurrent use.
type Repository[T any] interface {
	// Create stores the record, assigning it the next identity, and returns
	// the stored record including its new id. Identities are never reused.
	Create(ctx context.Context, record T) (T, error)

	// FindByID returns the record with the given identity, or false if no
	// such record exists.
	FindByID(ctx context.Context, id int64) (T, bool, error)

	// FindAll returns a snapshot of all records in insertion order.
	FindAll(ctx context.Context) ([]T, error)

	// Update applies the patch to the record with the given identity and
	// returns the updated record, or false if no such record exists.
	// Unpatched fields are retained.
	Update(ctx context.Context, id int64, patch map[string]any) (T, bool, error)

	// Delete removes the record with the given identity, reporting whether
	// a record was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
