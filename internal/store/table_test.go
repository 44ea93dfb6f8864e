package store

import (
	"context"
	"reflect"
	"testing"
)

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newRowTable(b Backend) *Table[row] {
	return NewTable(b, "rows", func(r row) string { return r.ID })
}

func TestTableMissingKeyLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	tbl := newRowTable(NewMemoryBackend())

	rows, err := tbl.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
	ok, err := tbl.Exists(ctx)
	if err != nil || ok {
		t.Fatalf("expected key to be absent, ok=%v err=%v", ok, err)
	}
}

func TestTableSaveAllNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	tbl := newRowTable(b)

	if err := tbl.SaveAll(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, ok, _ := b.Get(ctx, "rows")
	if !ok || string(data) != "[]" {
		t.Fatalf("expected [] to be stored, got %q (ok=%v)", data, ok)
	}
}

func TestTableUpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	tbl := newRowTable(NewMemoryBackend())

	for _, r := range []row{{"a", "one"}, {"b", "two"}, {"c", "three"}} {
		if err := tbl.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert %s: %v", r.ID, err)
		}
	}
	if err := tbl.Upsert(ctx, row{"b", "TWO"}); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	rows, _ := tbl.LoadAll(ctx)
	want := []row{{"a", "one"}, {"b", "TWO"}, {"c", "three"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %#v, want %#v", rows, want)
	}
}

func TestTableUpdateAndRemoveMissing(t *testing.T) {
	ctx := context.Background()
	tbl := newRowTable(NewMemoryBackend())
	_ = tbl.Upsert(ctx, row{"a", "one"})

	got, err := tbl.Update(ctx, "zzz", func(r *row) error {
		t.Fatal("fn must not run for a missing id")
		return nil
	})
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing id; got %v, %v", got, err)
	}

	got, err = tbl.Update(ctx, "a", func(r *row) error { r.Name = "uno"; return nil })
	if err != nil || got == nil || got.Name != "uno" {
		t.Fatalf("update: %v %v", got, err)
	}

	removed, err := tbl.Remove(ctx, "zzz")
	if err != nil || removed {
		t.Fatalf("remove missing: removed=%v err=%v", removed, err)
	}
	removed, err = tbl.Remove(ctx, "a")
	if err != nil || !removed {
		t.Fatalf("remove a: removed=%v err=%v", removed, err)
	}
	if r, _ := tbl.Find(ctx, "a"); r != nil {
		t.Fatalf("expected a to be gone, found %#v", r)
	}
}

func TestTableSeedIfAbsent(t *testing.T) {
	ctx := context.Background()
	tbl := newRowTable(NewMemoryBackend())
	calls := 0
	seed := func() []row { calls++; return []row{{"s", "seeded"}} }

	wrote, err := tbl.SeedIfAbsent(ctx, seed)
	if err != nil || !wrote {
		t.Fatalf("first seed: wrote=%v err=%v", wrote, err)
	}
	wrote, err = tbl.SeedIfAbsent(ctx, seed)
	if err != nil || wrote {
		t.Fatalf("second seed: wrote=%v err=%v", wrote, err)
	}
	if calls != 1 {
		t.Fatalf("seed func called %d times", calls)
	}
}

func TestTableInsertRejectsExistingID(t *testing.T) {
	ctx := context.Background()
	tbl := newRowTable(NewMemoryBackend())

	ok, err := tbl.Insert(ctx, row{"a", "first"})
	if err != nil || !ok {
		t.Fatalf("first insert: ok=%v err=%v", ok, err)
	}
	ok, err = tbl.Insert(ctx, row{"a", "second"})
	if err != nil || ok {
		t.Fatalf("duplicate insert: ok=%v err=%v", ok, err)
	}
	got, _ := tbl.Find(ctx, "a")
	if got == nil || got.Name != "first" {
		t.Fatalf("stored = %#v, want the first row", got)
	}
}
