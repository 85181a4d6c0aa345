package memstore

import (
	"reflect"
	"slices"
	"strings"

	"github.com/goliatone/go-memory-store/store"
)

// Repository is an in-memory, insertion-ordered collection of records with
// auto-incrementing numeric identities. Callers never supply an identity at
// creation time; the repository assigns the next one and never reuses it,
// even after deletion.
//
// All failure is reported through sentinel return values, never through
// errors or panics, so callers can branch without error handling.
//
// Repository is not safe for concurrent use. Wrap it in a Guarded when it is
// shared across goroutines.
type Repository[T any] struct {
	handlers store.ModelHandlers[T]
	items    []T
	nextID   int64
}

// New creates an empty repository. Both identity handlers are required.
func New[T any](handlers store.ModelHandlers[T]) *Repository[T] {
	if !handlers.Valid() {
		panic("memstore: ModelHandlers.GetID and ModelHandlers.SetID are required")
	}
	return &Repository[T]{
		handlers: handlers,
		nextID:   1,
	}
}

// Create assigns the next identity to the record, stores it, and returns the
// stored record. The identity counter advances on every call.
func (r *Repository[T]) Create(record T) T {
	record = r.handlers.SetID(record, r.nextID)
	r.nextID++
	r.items = append(r.items, record)
	return record
}

// FindByID returns the record with the given identity, or false when absent.
func (r *Repository[T]) FindByID(id int64) (T, bool) {
	for _, item := range r.items {
		if r.handlers.GetID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FindAll returns a snapshot of all records in insertion order. Mutating the
// returned slice does not affect the repository.
func (r *Repository[T]) FindAll() []T {
	return slices.Clone(r.items)
}

// Update merges the patch onto the record with the given identity and
// returns the updated record. Patch keys name exported struct fields
// (matched by field name, then by json tag); unknown keys and incompatible
// values are skipped. The record's identity is immutable: a patch cannot
// change it. Returns false, with no mutation, when the id is absent.
func (r *Repository[T]) Update(id int64, patch map[string]any) (T, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, false
	}

	applyPatch(&r.items[idx], patch)
	r.items[idx] = r.handlers.SetID(r.items[idx], id)
	return r.items[idx], true
}

// Delete removes the record with the given identity, reporting whether a
// record was actually removed.
func (r *Repository[T]) Delete(id int64) bool {
	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return true
}

// Len returns the number of stored records.
func (r *Repository[T]) Len() int {
	return len(r.items)
}

func (r *Repository[T]) indexOf(id int64) int {
	for i, item := range r.items {
		if r.handlers.GetID(item) == id {
			return i
		}
	}
	return -1
}

// applyPatch shallow-merges patch values onto the record's exported fields.
// The record may be a struct or a pointer to one; anything else is left
// untouched.
func applyPatch[T any](record *T, patch map[string]any) {
	rv := reflect.ValueOf(record).Elem()
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}

	for name, value := range patch {
		field := patchField(rv, name)
		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}

		pv := reflect.ValueOf(value)
		switch {
		case pv.Type().AssignableTo(field.Type()):
			field.Set(pv)
		case field.Kind() == reflect.String && pv.Kind() != reflect.String:
			// Numeric-to-string conversion produces rune strings; skip.
		case pv.Type().ConvertibleTo(field.Type()):
			field.Set(pv.Convert(field.Type()))
		}
	}
}

// patchField resolves a patch key to a struct field, preferring the exact
// field name, then a case-insensitive match, then the json tag.
func patchField(rv reflect.Value, name string) reflect.Value {
	rt := rv.Type()

	if f, ok := rt.FieldByName(name); ok && f.IsExported() {
		return rv.FieldByIndex(f.Index)
	}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return rv.Field(i)
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == name {
			return rv.Field(i)
		}
	}

	return reflect.Value{}
}
