package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Table is an ordered list of records persisted as a single JSON array
// under one key. Every mutation reads the whole list, changes it and writes
// the whole list back; mu serializes those cycles within the process.
type Table[T any] struct {
	backend Backend
	key     string
	idOf    func(T) string
	mu      sync.Mutex
}

func NewTable[T any](backend Backend, key string, idOf func(T) string) *Table[T] {
	return &Table[T]{backend: backend, key: key, idOf: idOf}
}

// LoadAll returns every stored record in insertion order. A missing key
// reads as an empty list.
func (t *Table[T]) LoadAll(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// SaveAll replaces the stored list.
func (t *Table[T]) SaveAll(ctx context.Context, rows []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(ctx, rows)
}

// Exists reports whether the key has ever been written.
func (t *Table[T]) Exists(ctx context.Context) (bool, error) {
	_, ok, err := t.backend.Get(ctx, t.key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", t.key, err)
	}
	return ok, nil
}

// SeedIfAbsent writes rows only when the key does not exist yet and reports
// whether it did.
func (t *Table[T]) SeedIfAbsent(ctx context.Context, rows func() []T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok, err := t.backend.Get(ctx, t.key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", t.key, err)
	}
	if ok {
		return false, nil
	}
	if err := t.save(ctx, rows()); err != nil {
		return false, err
	}
	return true, nil
}

// Find returns the record with the given id, or nil if there is none.
func (t *Table[T]) Find(ctx context.Context, id string) (*T, error) {
	rows, err := t.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if t.idOf(rows[i]) == id {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Filter returns the records for which keep is true, in stored order.
func (t *Table[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	rows, err := t.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Upsert replaces the record with the same id in place, or appends it.
func (t *Table[T]) Upsert(ctx context.Context, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.load(ctx)
	if err != nil {
		return err
	}
	id := t.idOf(rec)
	replaced := false
	for i := range rows {
		if t.idOf(rows[i]) == id {
			rows[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, rec)
	}
	return t.save(ctx, rows)
}

// Insert appends rec unless a record with the same id is already stored.
// It reports whether rec was written.
func (t *Table[T]) Insert(ctx context.Context, rec T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.load(ctx)
	if err != nil {
		return false, err
	}
	id := t.idOf(rec)
	for i := range rows {
		if t.idOf(rows[i]) == id {
			return false, nil
		}
	}
	return true, t.save(ctx, append(rows, rec))
}

// Update applies fn to the record with the given id and persists the result.
// It returns nil without writing when no record matches.
func (t *Table[T]) Update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if t.idOf(rows[i]) != id {
			continue
		}
		if err := fn(&rows[i]); err != nil {
			return nil, err
		}
		if err := t.save(ctx, rows); err != nil {
			return nil, err
		}
		out := rows[i]
		return &out, nil
	}
	return nil, nil
}

// Remove deletes the record with the given id and reports whether one existed.
func (t *Table[T]) Remove(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.load(ctx)
	if err != nil {
		return false, err
	}
	kept := rows[:0]
	for _, r := range rows {
		if t.idOf(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rows) {
		return false, nil
	}
	return true, t.save(ctx, kept)
}

func (t *Table[T]) load(ctx context.Context) ([]T, error) {
	data, ok, err := t.backend.Get(ctx, t.key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", t.key, err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.key, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (t *Table[T]) encode(rows []T) ([]byte, error) {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.key, err)
	}
	return data, nil
}

func (t *Table[T]) save(ctx context.Context, rows []T) error {
	data, err := t.encode(rows)
	if err != nil {
		return err
	}
	if err := t.backend.Set(ctx, t.key, data); err != nil {
		return fmt.Errorf("set %s: %w", t.key, err)
	}
	return nil
}
