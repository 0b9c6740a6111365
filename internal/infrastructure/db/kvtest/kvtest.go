// Package kvtest holds the behaviour every KV substrate must share.
package kvtest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/ports"
)

// Run exercises store against the ports.KVStore contract. The store must
// start empty.
func Run(t *testing.T, store ports.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get(ctx, "absent"); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ctx, "users", []byte(`[]`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := store.Get(ctx, "users")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !bytes.Equal(got, []byte(`[]`)) {
			t.Fatalf("expected [], got %q", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		_ = store.Set(ctx, "currentUser", []byte(`{"id":"1"}`))
		if err := store.Set(ctx, "currentUser", []byte(`{"id":"2"}`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _ := store.Get(ctx, "currentUser")
		if string(got) != `{"id":"2"}` {
			t.Fatalf("expected last write to win, got %q", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = store.Set(ctx, "gone", []byte("x"))
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Get(ctx, "gone"); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		if err := store.Delete(ctx, "never-set"); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		_ = store.Set(ctx, "copy", []byte("abc"))
		got, _ := store.Get(ctx, "copy")
		got[0] = 'z'
		again, _ := store.Get(ctx, "copy")
		if string(again) != "abc" {
			t.Fatalf("stored value mutated through Get result: %q", again)
		}
	})

	if p, ok := store.(ports.Pinger); ok {
		t.Run("ping", func(t *testing.T) {
			if err := p.Ping(ctx); err != nil {
				t.Fatalf("ping: %v", err)
			}
		})
	}
}
