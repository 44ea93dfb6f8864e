package job

import (
	"context"
	"testing"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
	"hr-portal/internal/store"
)

type staticWorkers []model.User

func (w staticWorkers) Workers(context.Context) ([]model.User, error) { return w, nil }

func TestCloseFillsMissingDays(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemoryBackend()
	clock := service.FixedClock(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC))

	attendance, err := service.NewAttendanceService(store.NewAttendanceStore(b), clock, "09:00")
	if err != nil {
		t.Fatalf("new attendance service: %v", err)
	}
	leave := service.NewLeaveService(store.NewLeaveStore(b), clock, nil)

	if _, err := attendance.CheckIn(ctx, "w1", "Kim"); err != nil {
		t.Fatalf("check in: %v", err)
	}
	req, err := leave.CreateLeaveRequest(ctx, "w2", "Lee", model.LeaveTypeAnnual, "2024-03-04", "2024-03-05", "trip")
	if err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if _, err := leave.UpdateLeaveStatus(ctx, req.ID, model.LeaveStatusApproved, "hr"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// Pending leave does not excuse an absence.
	if _, err := leave.CreateLeaveRequest(ctx, "w3", "Park", model.LeaveTypeSick, "2024-03-04", "2024-03-04", "flu"); err != nil {
		t.Fatalf("create leave: %v", err)
	}

	workers := staticWorkers{{ID: "w1", Name: "Kim"}, {ID: "w2", Name: "Lee"}, {ID: "w3", Name: "Park"}}
	closer := NewAttendanceCloser("", time.UTC, clock, workers, leave, attendance)

	res, err := closer.Close(ctx, "2024-03-04")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.Absent != 1 || res.Leave != 1 {
		t.Fatalf("result = %+v", res)
	}

	records, _ := attendance.AllToday(ctx)
	byUser := map[string]model.AttendanceStatus{}
	for _, r := range records {
		byUser[r.UserID] = r.Status
	}
	want := map[string]model.AttendanceStatus{
		"w1": model.AttendanceStatusLate,
		"w2": model.AttendanceStatusLeave,
		"w3": model.AttendanceStatusAbsent,
	}
	for id, status := range want {
		if byUser[id] != status {
			t.Fatalf("%s status = %q, want %q", id, byUser[id], status)
		}
	}

	again, err := closer.Close(ctx, "2024-03-04")
	if err != nil {
		t.Fatalf("second close: %v", err)
	}
	if again.Absent != 0 || again.Leave != 0 {
		t.Fatalf("second run wrote records: %+v", again)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	c := NewAttendanceCloser("not a cron", time.UTC, time.Now, staticWorkers{}, nil, nil)
	if err := c.Start(); err == nil {
		c.Stop()
		t.Fatal("expected schedule error")
	}
}
