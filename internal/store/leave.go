package store

import (
	"context"

	"hr-portal/internal/model"
)

type LeaveStore struct {
	requests *Table[model.LeaveRequest]
}

func NewLeaveStore(b Backend) *LeaveStore {
	return &LeaveStore{
		requests: NewTable(b, model.LeaveKey, func(r model.LeaveRequest) string { return r.ID }),
	}
}

func (s *LeaveStore) Create(ctx context.Context, req model.LeaveRequest) error {
	return s.requests.Upsert(ctx, req)
}

// GetByID returns the leave request with the given id, or nil if not found.
func (s *LeaveStore) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	return s.requests.Find(ctx, id)
}

func (s *LeaveStore) Update(ctx context.Context, id string, fn func(*model.LeaveRequest) error) (*model.LeaveRequest, error) {
	return s.requests.Update(ctx, id, fn)
}

func (s *LeaveStore) GetByUser(ctx context.Context, userID string) ([]model.LeaveRequest, error) {
	return s.requests.Filter(ctx, func(r model.LeaveRequest) bool { return r.UserID == userID })
}

// GetByDate returns requests whose range includes the date (YYYY-MM-DD).
func (s *LeaveStore) GetByDate(ctx context.Context, date string) ([]model.LeaveRequest, error) {
	return s.requests.Filter(ctx, func(r model.LeaveRequest) bool { return r.Covers(date) })
}

func (s *LeaveStore) All(ctx context.Context) ([]model.LeaveRequest, error) {
	return s.requests.LoadAll(ctx)
}
