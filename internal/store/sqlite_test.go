package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	b, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b.SetMany(ctx, map[string][]byte{"a": []byte(`[1]`), "b": []byte(`[2]`)}); err != nil {
		t.Fatalf("set many: %v", err)
	}
	if err := b.Set(ctx, "a", []byte(`[3]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err = NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close(ctx)

	v, ok, err := b.Get(ctx, "a")
	if err != nil || !ok || string(v) != `[3]` {
		t.Fatalf("get a = %q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := b.Get(ctx, "b"); ok {
		t.Fatal("b should have been deleted")
	}
	if b.Driver() != DriverSQLite {
		t.Fatalf("driver = %q", b.Driver())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Options{Driver: "redis"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	b, err := Open(Options{})
	if err != nil {
		t.Fatalf("open default: %v", err)
	}
	if b.Driver() != DriverMemory {
		t.Fatalf("default driver = %q", b.Driver())
	}
}
