package cacheinfra

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidFetchFn reports a fetch function that does not have the
// required func(context.Context) (T, error) shape.
var ErrInvalidFetchFn = errors.New("cacheinfra: invalid fetch function")

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ValidateFetchFn checks that fetchFn is a func(context.Context) (T, error).
// Cache backends call this before handing the function to their client so a
// malformed callback surfaces as a typed error instead of a panic.
func ValidateFetchFn(fetchFn any) error {
	if fetchFn == nil {
		return fmt.Errorf("%w: nil", ErrInvalidFetchFn)
	}

	ft := reflect.TypeOf(fetchFn)
	if ft.Kind() != reflect.Func {
		return fmt.Errorf("%w: %T is not a function", ErrInvalidFetchFn, fetchFn)
	}
	if ft.NumIn() != 1 || ft.NumOut() != 2 {
		return fmt.Errorf("%w: must be func(context.Context) (T, error)", ErrInvalidFetchFn)
	}
	if !ft.In(0).Implements(contextType) {
		return fmt.Errorf("%w: first parameter must be context.Context", ErrInvalidFetchFn)
	}
	if !ft.Out(1).Implements(errorType) {
		return fmt.Errorf("%w: second return value must be error", ErrInvalidFetchFn)
	}

	return nil
}

// CallFetchFn invokes a previously validated fetch function, erasing its
// generic result type. The direct assertion covers the common case; the
// reflective call handles instantiations of FetchFn[T] for concrete T.
func CallFetchFn(ctx context.Context, fetchFn any) (any, error) {
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return fn(ctx)
	}

	results := reflect.ValueOf(fetchFn).Call([]reflect.Value{reflect.ValueOf(ctx)})

	var result any
	if rv := results[0]; rv.IsValid() && rv.CanInterface() {
		result = rv.Interface()
	}

	var err error
	if ev := results[1]; ev.IsValid() && !ev.IsNil() {
		err = ev.Interface().(error)
	}

	return result, err
}
