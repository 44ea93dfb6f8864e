package store

import (
	"context"

	"hr-portal/internal/model"
)

type DocumentStore struct {
	docs *Table[model.Document]
}

func NewDocumentStore(b Backend) *DocumentStore {
	return &DocumentStore{
		docs: NewTable(b, model.DocumentsKey, func(d model.Document) string { return d.ID }),
	}
}

func (s *DocumentStore) SeedIfAbsent(ctx context.Context, rows func() []model.Document) (bool, error) {
	return s.docs.SeedIfAbsent(ctx, rows)
}

func (s *DocumentStore) Save(ctx context.Context, doc model.Document) error {
	return s.docs.Upsert(ctx, doc)
}

func (s *DocumentStore) GetByID(ctx context.Context, id string) (*model.Document, error) {
	return s.docs.Find(ctx, id)
}

func (s *DocumentStore) Update(ctx context.Context, id string, fn func(*model.Document) error) (*model.Document, error) {
	return s.docs.Update(ctx, id, fn)
}

func (s *DocumentStore) GetByUser(ctx context.Context, userID string) ([]model.Document, error) {
	return s.docs.Filter(ctx, func(d model.Document) bool { return d.UserID == userID })
}

func (s *DocumentStore) All(ctx context.Context) ([]model.Document, error) {
	return s.docs.LoadAll(ctx)
}
