package store

import (
	"context"

	"hr-portal/internal/model"
)

type WorkLogStore struct {
	logs *Table[model.WorkLog]
}

func NewWorkLogStore(b Backend) *WorkLogStore {
	return &WorkLogStore{
		logs: NewTable(b, model.WorkLogsKey, func(l model.WorkLog) string { return l.ID }),
	}
}

func (s *WorkLogStore) Create(ctx context.Context, log model.WorkLog) error {
	return s.logs.Upsert(ctx, log)
}

func (s *WorkLogStore) GetByID(ctx context.Context, id string) (*model.WorkLog, error) {
	return s.logs.Find(ctx, id)
}

func (s *WorkLogStore) Update(ctx context.Context, id string, fn func(*model.WorkLog) error) (*model.WorkLog, error) {
	return s.logs.Update(ctx, id, fn)
}

func (s *WorkLogStore) GetByUser(ctx context.Context, userID string) ([]model.WorkLog, error) {
	return s.logs.Filter(ctx, func(l model.WorkLog) bool { return l.UserID == userID })
}

func (s *WorkLogStore) All(ctx context.Context) ([]model.WorkLog, error) {
	return s.logs.LoadAll(ctx)
}
