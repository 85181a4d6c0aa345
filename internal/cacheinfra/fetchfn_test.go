package cacheinfra

import (
	"context"
	"errors"
	"testing"
)

func TestValidateFetchFn(t *testing.T) {
	tests := []struct {
		name    string
		fetchFn any
		wantErr bool
	}{
		{"valid generic shape", func(ctx context.Context) (int, error) { return 0, nil }, false},
		{"valid any shape", func(ctx context.Context) (any, error) { return nil, nil }, false},
		{"nil", nil, true},
		{"not a function", "nope", true},
		{"wrong arity", func() (int, error) { return 0, nil }, true},
		{"wrong first param", func(s string) (int, error) { return 0, nil }, true},
		{"wrong second return", func(ctx context.Context) (int, int) { return 0, 0 }, true},
		{"single return", func(ctx context.Context) int { return 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFetchFn(tt.fetchFn)
			if tt.wantErr && !errors.Is(err, ErrInvalidFetchFn) {
				t.Errorf("expected ErrInvalidFetchFn, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
		})
	}
}

func TestCallFetchFn_TypedFunction(t *testing.T) {
	result, err := CallFetchFn(context.Background(), func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "hello" {
		t.Errorf("expected hello, got %v", result)
	}
}

func TestCallFetchFn_PropagatesError(t *testing.T) {
	wantErr := errors.New("fetch failed")
	_, err := CallFetchFn(context.Background(), func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
}

func TestCallFetchFn_AnyFastPath(t *testing.T) {
	result, err := CallFetchFn(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %v", result)
	}
}
