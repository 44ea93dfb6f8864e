package store

import (
	"context"

	"hr-portal/internal/model"
)

type AttendanceStore struct {
	records *Table[model.AttendanceRecord]
}

func NewAttendanceStore(b Backend) *AttendanceStore {
	return &AttendanceStore{
		records: NewTable(b, model.AttendanceKey, func(r model.AttendanceRecord) string { return r.ID }),
	}
}

// GetRecord returns a user's record for the given date (YYYY-MM-DD), or nil if not found.
func (s *AttendanceStore) GetRecord(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	return s.records.Find(ctx, model.AttendanceID(userID, date))
}

// SaveRecord upserts a record by its synthetic id.
func (s *AttendanceStore) SaveRecord(ctx context.Context, record model.AttendanceRecord) error {
	return s.records.Upsert(ctx, record)
}

// UpdateRecord mutates an existing record in place; nil when missing.
func (s *AttendanceStore) UpdateRecord(ctx context.Context, id string, fn func(*model.AttendanceRecord) error) (*model.AttendanceRecord, error) {
	return s.records.Update(ctx, id, fn)
}

// GetAttendanceByDate returns all records for the given date.
func (s *AttendanceStore) GetAttendanceByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	return s.records.Filter(ctx, func(r model.AttendanceRecord) bool { return r.Date == date })
}

// GetUserAttendance returns every record for a user, in stored order.
func (s *AttendanceStore) GetUserAttendance(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	return s.records.Filter(ctx, func(r model.AttendanceRecord) bool { return r.UserID == userID })
}

// GetAttendanceByDateRange returns records within [from, to], optionally filtered by user.
func (s *AttendanceStore) GetAttendanceByDateRange(ctx context.Context, from, to, userID string) ([]model.AttendanceRecord, error) {
	return s.records.Filter(ctx, func(r model.AttendanceRecord) bool {
		if userID != "" && r.UserID != userID {
			return false
		}
		return r.Date >= from && r.Date <= to
	})
}

func (s *AttendanceStore) All(ctx context.Context) ([]model.AttendanceRecord, error) {
	return s.records.LoadAll(ctx)
}

func (s *AttendanceStore) SeedIfAbsent(ctx context.Context, rows func() []model.AttendanceRecord) (bool, error) {
	return s.records.SeedIfAbsent(ctx, rows)
}
