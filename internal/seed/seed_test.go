package seed

import (
	"context"
	"testing"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
	"hr-portal/internal/store"
)

func newStores(b store.Backend) Stores {
	return Stores{
		Users:      store.NewUserStore(b),
		Attendance: store.NewAttendanceStore(b),
		Tasks:      store.NewTaskStore(b),
		Messages:   store.NewMessageStore(b),
		Chat:       store.NewChatStore(b),
	}
}

func TestRunSeedsOnceAndLoginWorks(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemoryBackend()
	st := newStores(b)
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)

	if err := Run(ctx, st, now); err != nil {
		t.Fatalf("run: %v", err)
	}
	// A user changes something; a second run must not reset it.
	if _, err := st.Tasks.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := Run(ctx, st, now); err != nil {
		t.Fatalf("second run: %v", err)
	}
	tasks, _ := st.Tasks.All(ctx)
	if len(tasks) != 7 {
		t.Fatalf("tasks = %d, want 7", len(tasks))
	}

	records, _ := st.Attendance.All(ctx)
	if len(records) != 75 {
		t.Fatalf("attendance records = %d, want 75", len(records))
	}
	for _, r := range records {
		if r.ID != model.AttendanceID(r.UserID, r.Date) {
			t.Fatalf("record id %q does not match %s/%s", r.ID, r.UserID, r.Date)
		}
	}

	auth := service.NewAuthService(st.Users, "secret", time.Hour, service.FixedClock(time.Now()))
	u, err := auth.Login(ctx, "test01", "1234")
	if err != nil || !u.IsWorker() {
		t.Fatalf("login test01: %v %v", u, err)
	}
	if _, err := auth.Login(ctx, "test02", "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
}

func TestAttendanceWorkHoursMatchTimes(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	for _, r := range Attendance(now) {
		switch r.Status {
		case model.AttendanceStatusAbsent, model.AttendanceStatusLeave:
			if r.CheckIn != "" || r.WorkHours != nil {
				t.Fatalf("%s: administrative record has times", r.ID)
			}
		default:
			if r.WorkHours == nil || *r.WorkHours != hoursBetween(r.CheckIn, r.CheckOut) {
				t.Fatalf("%s: work hours mismatch", r.ID)
			}
		}
	}
	if h := hoursBetween("08:45", "18:00"); h != 9.25 {
		t.Fatalf("08:45-18:00 = %v", h)
	}
}

func TestChatSummariesMatchNewestMessage(t *testing.T) {
	rooms, msgs := Chat()
	if len(rooms) != 5 || len(msgs) != 9 {
		t.Fatalf("rooms=%d msgs=%d", len(rooms), len(msgs))
	}
	for _, r := range rooms {
		if r.LastMessageAt == nil || r.LastMessage == "" {
			t.Fatalf("room %s has no summary", r.ID)
		}
		if r.UnreadCount != r.Unread["company1"] {
			t.Fatalf("room %s unread mismatch", r.ID)
		}
	}
}
