package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/infrastructure/db/kvtest"
)

func openTemp(t *testing.T, path, profile string) *Store {
	t.Helper()
	s, err := Open(path, profile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestStore_Contract(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "kv.db"), "default")
	defer s.Close()
	kvtest.Run(t, s)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s := openTemp(t, path, "default")
	if err := s.Set(ctx, "users", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s = openTemp(t, path, "default")
	defer s.Close()
	got, err := s.Get(ctx, "users")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestStore_ProfilesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	a := openTemp(t, path, "alice")
	if err := a.Set(ctx, "currentUser", []byte(`{"id":"a"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	b, err := NewStore(a.db, "bob")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer a.Close()

	if _, err := b.Get(ctx, "currentUser"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected bob's profile to be empty, got %v", err)
	}
}

func TestStore_PingAfterClose(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "kv.db"), "default")
	_ = s.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail on a closed database")
	}
}
