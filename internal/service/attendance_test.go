package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

func newAttendance(t *testing.T, c *stepClock) *AttendanceService {
	t.Helper()
	svc, err := NewAttendanceService(store.NewAttendanceStore(store.NewMemoryBackend()), c.now, "09:00")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewAttendanceServiceRejectsBadCutoff(t *testing.T) {
	if _, err := NewAttendanceService(store.NewAttendanceStore(store.NewMemoryBackend()), time.Now, "9am"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestCheckInLateCutoff(t *testing.T) {
	tests := []struct {
		hour, min, sec int
		want           model.AttendanceStatus
	}{
		{8, 30, 0, model.AttendanceStatusPresent},
		{9, 0, 0, model.AttendanceStatusPresent},
		{9, 0, 59, model.AttendanceStatusPresent},
		{9, 1, 0, model.AttendanceStatusLate},
		{13, 0, 0, model.AttendanceStatusLate},
	}
	for _, tt := range tests {
		c := newStepClock(2024, 3, 4, 0, 0)
		c.set(tt.hour, tt.min, tt.sec)
		svc := newAttendance(t, c)
		rec, err := svc.CheckIn(context.Background(), "u1", "Kim")
		if err != nil {
			t.Fatalf("check in: %v", err)
		}
		if rec.Status != tt.want {
			t.Errorf("%02d:%02d:%02d: status = %s, want %s", tt.hour, tt.min, tt.sec, rec.Status, tt.want)
		}
		if rec.ID != "u1-2024-03-04" || rec.Date != "2024-03-04" {
			t.Errorf("id = %s date = %s", rec.ID, rec.Date)
		}
	}
}

func TestCheckOutComputesWorkHours(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 9, 0)
	svc := newAttendance(t, c)
	if _, err := svc.CheckIn(ctx, "u1", "Kim"); err != nil {
		t.Fatalf("check in: %v", err)
	}
	c.set(18, 15, 30)
	rec, err := svc.CheckOut(ctx, "u1")
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if rec.CheckIn != "09:00" || rec.CheckOut != "18:15" {
		t.Fatalf("times = %s..%s", rec.CheckIn, rec.CheckOut)
	}
	if rec.WorkHours == nil || *rec.WorkHours != 9.25 {
		t.Fatalf("work hours = %v, want 9.25", rec.WorkHours)
	}

	// Checking out again later overwrites the earlier check-out.
	c.set(18, 0, 0)
	rec, err = svc.CheckOut(ctx, "u1")
	if err != nil {
		t.Fatalf("second check out: %v", err)
	}
	if *rec.WorkHours != 9 {
		t.Fatalf("work hours = %v, want 9", *rec.WorkHours)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	c := newStepClock(2024, 3, 4, 18, 0)
	svc := newAttendance(t, c)
	_, err := svc.CheckOut(context.Background(), "u1")
	if !errors.Is(err, ErrNotCheckedIn) || !errors.Is(err, ErrInvalidPrecondition) {
		t.Fatalf("err = %v, want ErrNotCheckedIn", err)
	}
}

func TestCheckOutBeforeCheckInTime(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 10, 0)
	svc := newAttendance(t, c)
	svc.CheckIn(ctx, "u1", "Kim")
	c.set(9, 30, 0)
	if _, err := svc.CheckOut(ctx, "u1"); !errors.Is(err, ErrInvalidPrecondition) {
		t.Fatalf("err = %v, want ErrInvalidPrecondition", err)
	}
	rec, _ := svc.TodayAttendance(ctx, "u1")
	if rec.CheckOut != "" || rec.WorkHours != nil {
		t.Fatalf("failed check-out was persisted: %#v", rec)
	}
}

func TestReCheckInKeepsCheckOut(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 8, 50)
	svc := newAttendance(t, c)
	svc.CheckIn(ctx, "u1", "Kim")
	c.set(12, 0, 0)
	svc.CheckOut(ctx, "u1")

	c.set(13, 0, 0)
	rec, err := svc.CheckIn(ctx, "u1", "Kim")
	if err != nil {
		t.Fatalf("re-check-in: %v", err)
	}
	if rec.CheckIn != "13:00" || rec.Status != model.AttendanceStatusLate {
		t.Fatalf("re-check-in = %#v", rec)
	}
	if rec.CheckOut != "12:00" || rec.WorkHours == nil || *rec.WorkHours != 3.17 {
		t.Fatalf("check-out lost: %#v", rec)
	}
	all, _ := svc.AllToday(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one record per user and day, got %d", len(all))
	}
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 1, 9, 0)
	svc := newAttendance(t, c)
	for day := 1; day <= 12; day++ {
		c.t = time.Date(2024, 3, day, 9, 0, 0, 0, seoul)
		if _, err := svc.CheckIn(ctx, "u1", "Kim"); err != nil {
			t.Fatalf("check in day %d: %v", day, err)
		}
	}
	svc.CheckIn(ctx, "u2", "Lee")

	recs, err := svc.History(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(recs) != 10 || recs[0].Date != "2024-03-12" || recs[9].Date != "2024-03-03" {
		t.Fatalf("got %d records from %s", len(recs), recs[0].Date)
	}
	if recs, _ := svc.History(ctx, "u1", 3); len(recs) != 3 {
		t.Fatalf("limit 3 returned %d", len(recs))
	}
}

func TestRecordAbsenceNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 9, 0)
	svc := newAttendance(t, c)
	svc.CheckIn(ctx, "u1", "Kim")

	wrote, err := svc.RecordAbsence(ctx, "u1", "Kim", "2024-03-04", model.AttendanceStatusAbsent)
	if err != nil || wrote {
		t.Fatalf("wrote = %v err = %v, want untouched", wrote, err)
	}
	wrote, err = svc.RecordAbsence(ctx, "u2", "Lee", "2024-03-04", model.AttendanceStatusLeave)
	if err != nil || !wrote {
		t.Fatalf("wrote = %v err = %v", wrote, err)
	}
	if _, err := svc.RecordAbsence(ctx, "u2", "Lee", "2024-03-05", model.AttendanceStatusLate); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("late absence: err = %v", err)
	}

	recs, _ := svc.Range(ctx, "2024-03-04", "2024-03-04", "")
	if len(recs) != 2 || recs[0].UserID != "u1" || recs[1].Status != model.AttendanceStatusLeave {
		t.Fatalf("range = %#v", recs)
	}
}

func TestRangeRejectsInvertedDates(t *testing.T) {
	svc := newAttendance(t, newStepClock(2024, 3, 4, 9, 0))
	if _, err := svc.Range(context.Background(), "2024-03-05", "2024-03-01", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestCalendarGrid(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 9, 2, 9, 0)
	svc := newAttendance(t, c)
	svc.CheckIn(ctx, "u1", "Kim")

	days, err := svc.Calendar(ctx, "u1", 2024, time.September)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(days) != 42 {
		t.Fatalf("cells = %d", len(days))
	}
	// 2024-09-01 is a Sunday, so the grid starts on the first.
	if days[0].Date != "2024-09-01" || !days[0].InMonth {
		t.Fatalf("first cell = %#v", days[0])
	}
	if days[41].Date != "2024-10-12" || days[41].InMonth {
		t.Fatalf("last cell = %#v", days[41])
	}
	if !days[1].IsToday || days[1].Record == nil || days[1].Record.CheckIn != "09:00" {
		t.Fatalf("today cell = %#v", days[1])
	}
	if _, err := svc.Calendar(ctx, "u1", 2024, 13); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("month 13: err = %v", err)
	}
}

func TestWorkHoursRounding(t *testing.T) {
	tests := []struct {
		in, out string
		want    float64
	}{
		{"08:45", "18:00", 9.25},
		{"09:15", "18:15", 9.0},
		{"09:00", "09:00", 0},
		{"09:00", "09:20", 0.33},
	}
	for _, tt := range tests {
		got, err := workHours(tt.in, tt.out)
		if err != nil {
			t.Fatalf("%s-%s: %v", tt.in, tt.out, err)
		}
		if got != tt.want {
			t.Errorf("%s-%s = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}
