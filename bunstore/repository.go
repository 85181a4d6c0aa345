package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-memory-store/store"
)

// Interface assertion to ensure Repository implements store.Repository[T]
var _ store.Repository[struct{}] = (*Repository[struct{}])(nil)

// ErrMissingHandlers is returned by New when either identity handler is nil.
var ErrMissingHandlers = errors.New("bunstore: ModelHandlers.GetID and ModelHandlers.SetID are required")

// Repository is a SQL-backed store.Repository over a bun.DB. T must be a
// struct type with bun tags and an autoincrementing integer primary key
// named id:
//
//	type User struct {
//		ID   int64  `bun:"id,pk,autoincrement"`
//		Name string `bun:"name"`
//	}
//
// The sentinel contract matches the in-memory store: "not found" is the
// boolean, sql.ErrNoRows never escapes.
type Repository[T any] struct {
	db       *bun.DB
	handlers store.ModelHandlers[T]
}

// New creates a repository over the given database.
func New[T any](db *bun.DB, handlers store.ModelHandlers[T]) (*Repository[T], error) {
	if !handlers.Valid() {
		return nil, ErrMissingHandlers
	}
	return &Repository[T]{db: db, handlers: handlers}, nil
}

// Init creates the backing table if it does not exist.
func (r *Repository[T]) Init(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*T)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create table: %w", err)
	}
	return nil
}

// Create inserts the record and returns it with its assigned identity.
func (r *Repository[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T

	res, err := r.db.NewInsert().Model(&record).Exec(ctx)
	if err != nil {
		return zero, fmt.Errorf("bunstore: insert: %w", err)
	}

	// Drivers without LastInsertId support (postgres) scan the id back via
	// RETURNING, in which case the record already carries it.
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		record = r.handlers.SetID(record, id)
	}

	return record, nil
}

// FindByID returns the record with the given identity, or false when absent.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	var record T
	err := r.db.NewSelect().Model(&record).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("bunstore: select: %w", err)
	}
	return record, true, nil
}

// FindAll returns all records ordered by identity, which matches insertion
// order for autoincrementing keys.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: select all: %w", err)
	}
	return records, nil
}

// Update applies the patch to the record with the given identity. Patch keys
// name columns. Returns false when no row matched.
func (r *Repository[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, bool, error) {
	var zero T

	if len(patch) == 0 {
		return r.FindByID(ctx, id)
	}

	q := r.db.NewUpdate().Model((*T)(nil)).Where("id = ?", id)
	columns := 0
	for column, value := range patch {
		if column == "id" {
			// Identities are immutable.
			continue
		}
		q = q.Set("? = ?", bun.Ident(column), value)
		columns++
	}
	if columns == 0 {
		return r.FindByID(ctx, id)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("bunstore: update: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return zero, false, nil
	}

	return r.FindByID(ctx, id)
}

// Delete removes the record with the given identity, reporting whether a
// row was actually removed.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("bunstore: delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bunstore: delete: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored records.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*T)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("bunstore: count: %w", err)
	}
	return count, nil
}
