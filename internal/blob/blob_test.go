package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "documents/doc-1/contract.pdf"

	if _, _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get before put: want ErrNotFound, got %v", err)
	}
	info, err := s.Put(ctx, key, strings.NewReader("first"), "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 5 {
		t.Fatalf("size = %d, want 5", info.Size)
	}
	if _, err := s.Put(ctx, key, strings.NewReader("second version"), "application/pdf"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	_, rc, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "second version" {
		t.Fatalf("data = %q", data)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFSStore(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	exerciseStore(t, s)
}

func TestFSRejectsTraversal(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	for _, key := range []string{"", "/etc/passwd", "../escape", "a/../../b", "documents/..", "."} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), ""); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("key %q: want ErrInvalidKey, got %v", key, err)
		}
	}
	// Double dots inside a file name are not a path segment.
	for _, key := range []string{"documents/doc-6/등본..v2.pdf", "documents/doc-6/..hidden", "a/b.../c"} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), ""); err != nil {
			t.Fatalf("key %q: %v", key, err)
		}
		if _, rc, err := s.Get(context.Background(), key); err != nil {
			t.Fatalf("get %q: %v", key, err)
		} else {
			rc.Close()
		}
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil || s.Driver() != DriverMemory {
		t.Fatalf("default open: %v %v", s, err)
	}
	if _, err := Open(context.Background(), Config{Driver: "gcs"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, err := Open(context.Background(), Config{Driver: DriverS3}); err == nil {
		t.Fatal("expected error for s3 without bucket")
	}
}
