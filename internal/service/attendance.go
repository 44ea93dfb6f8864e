package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type AttendanceService struct {
	store  *store.AttendanceStore
	now    Clock
	cutoff time.Duration
}

// NewAttendanceService checks people in as late when they arrive strictly
// after lateCutoff (HH:MM).
func NewAttendanceService(st *store.AttendanceStore, now Clock, lateCutoff string) (*AttendanceService, error) {
	cutoff, err := ParseClock(lateCutoff)
	if err != nil {
		return nil, fmt.Errorf("parse late cutoff: %w", err)
	}
	return &AttendanceService{store: st, now: now, cutoff: cutoff}, nil
}

func (s *AttendanceService) today() (time.Time, string) {
	t := s.now()
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return t, t.Format(time.DateOnly)
}

func (s *AttendanceService) CheckIn(ctx context.Context, userID, userName string) (*model.AttendanceRecord, error) {
	if userID == "" {
		return nil, invalidf("user id is required")
	}
	now, date := s.today()
	status := model.AttendanceStatusPresent
	if sinceMidnight(now) > s.cutoff {
		status = model.AttendanceStatusLate
	}
	checkIn := now.Format(clockLayout)

	// Same-day re-check-in keeps checkOut and workHours.
	record, err := s.store.UpdateRecord(ctx, model.AttendanceID(userID, date), func(r *model.AttendanceRecord) error {
		r.UserName = userName
		r.CheckIn = checkIn
		r.Status = status
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if record != nil {
		return record, nil
	}

	record = &model.AttendanceRecord{
		ID:       model.AttendanceID(userID, date),
		UserID:   userID,
		UserName: userName,
		Date:     date,
		CheckIn:  checkIn,
		Status:   status,
	}
	if err := s.store.SaveRecord(ctx, *record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	now, date := s.today()
	checkOut := now.Format(clockLayout)

	record, err := s.store.UpdateRecord(ctx, model.AttendanceID(userID, date), func(r *model.AttendanceRecord) error {
		if r.CheckIn == "" {
			return ErrNotCheckedIn
		}
		hours, err := workHours(r.CheckIn, checkOut)
		if err != nil {
			return err
		}
		r.CheckOut = checkOut
		r.WorkHours = &hours
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("check out: %w", err)
	}
	if record == nil {
		return nil, ErrNotCheckedIn
	}
	return record, nil
}

// workHours returns the span between two same-day HH:MM values in hours,
// rounded to two decimals.
func workHours(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	if out < in {
		return 0, fmt.Errorf("check-out %s before check-in %s: %w", checkOut, checkIn, ErrInvalidPrecondition)
	}
	return math.Round((out-in).Hours()*100) / 100, nil
}

// TodayAttendance returns the user's record for today, or nil.
func (s *AttendanceService) TodayAttendance(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	_, date := s.today()
	record, err := s.store.GetRecord(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get today record: %w", err)
	}
	return record, nil
}

// History returns the user's most recent records, newest date first.
func (s *AttendanceService) History(ctx context.Context, userID string, limit int) ([]model.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.store.GetUserAttendance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user attendance: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *AttendanceService) AllToday(ctx context.Context) ([]model.AttendanceRecord, error) {
	_, date := s.today()
	records, err := s.store.GetAttendanceByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get attendance by date: %w", err)
	}
	return records, nil
}

// RecordAbsence writes an absent or leave record for a day with no record.
// It never overwrites and reports whether it wrote.
func (s *AttendanceService) RecordAbsence(ctx context.Context, userID, userName, date string, status model.AttendanceStatus) (bool, error) {
	if status != model.AttendanceStatusAbsent && status != model.AttendanceStatusLeave {
		return false, invalidf("status %q cannot be recorded administratively", status)
	}
	if userID == "" {
		return false, invalidf("user id is required")
	}
	if _, err := parseDate(date); err != nil {
		return false, err
	}
	existing, err := s.store.GetRecord(ctx, userID, date)
	if err != nil {
		return false, fmt.Errorf("get record: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	record := model.AttendanceRecord{
		ID:       model.AttendanceID(userID, date),
		UserID:   userID,
		UserName: userName,
		Date:     date,
		Status:   status,
	}
	if err := s.store.SaveRecord(ctx, record); err != nil {
		return false, fmt.Errorf("save record: %w", err)
	}
	return true, nil
}

// Range lists records with from <= date <= to, sorted by date then user id.
// An empty userID matches everyone.
func (s *AttendanceService) Range(ctx context.Context, from, to, userID string) ([]model.AttendanceRecord, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalidf("range end %s before start %s", to, from)
	}
	records, err := s.store.GetAttendanceByDateRange(ctx, from, to, userID)
	if err != nil {
		return nil, fmt.Errorf("get attendance range: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].UserID < records[j].UserID
	})
	return records, nil
}

// CalendarDay is one cell of a month view.
type CalendarDay struct {
	Date    string                  `json:"date"`
	Day     int                     `json:"day"`
	InMonth bool                    `json:"inMonth"`
	IsToday bool                    `json:"isToday"`
	Record  *model.AttendanceRecord `json:"record,omitempty"`
}

const calendarCells = 42

// Calendar returns a six-week grid starting on the Sunday on or before the
// first of the month, joined to the user's records.
func (s *AttendanceService) Calendar(ctx context.Context, userID string, year int, month time.Month) ([]CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, invalidf("month %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := start.AddDate(0, 0, calendarCells-1)

	records, err := s.store.GetAttendanceByDateRange(ctx, start.Format(time.DateOnly), end.Format(time.DateOnly), userID)
	if err != nil {
		return nil, fmt.Errorf("get attendance range: %w", err)
	}
	byDate := make(map[string]model.AttendanceRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	_, today := s.today()
	days := make([]CalendarDay, 0, calendarCells)
	for i := 0; i < calendarCells; i++ {
		d := start.AddDate(0, 0, i)
		date := d.Format(time.DateOnly)
		cell := CalendarDay{
			Date:    date,
			Day:     d.Day(),
			InMonth: d.Month() == month,
			IsToday: date == today,
		}
		if r, ok := byDate[date]; ok {
			cell.Record = &r
		}
		days = append(days, cell)
	}
	return days, nil
}
