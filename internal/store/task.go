package store

import (
	"context"

	"hr-portal/internal/model"
)

type TaskStore struct {
	tasks *Table[model.Task]
}

func NewTaskStore(b Backend) *TaskStore {
	return &TaskStore{
		tasks: NewTable(b, model.TasksKey, func(t model.Task) string { return t.ID }),
	}
}

func (s *TaskStore) Create(ctx context.Context, task model.Task) error {
	return s.tasks.Upsert(ctx, task)
}

func (s *TaskStore) GetByID(ctx context.Context, id string) (*model.Task, error) {
	return s.tasks.Find(ctx, id)
}

func (s *TaskStore) Update(ctx context.Context, id string, fn func(*model.Task) error) (*model.Task, error) {
	return s.tasks.Update(ctx, id, fn)
}

func (s *TaskStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.tasks.Remove(ctx, id)
}

func (s *TaskStore) GetByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	return s.tasks.Filter(ctx, func(t model.Task) bool { return t.AssignedTo == userID })
}

func (s *TaskStore) All(ctx context.Context) ([]model.Task, error) {
	return s.tasks.LoadAll(ctx)
}

func (s *TaskStore) SeedIfAbsent(ctx context.Context, rows func() []model.Task) (bool, error) {
	return s.tasks.SeedIfAbsent(ctx, rows)
}
