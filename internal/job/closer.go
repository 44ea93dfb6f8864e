// Package job runs scheduled maintenance over the portal's stores.
package job

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"hr-portal/internal/model"
)

const DefaultCloseSchedule = "0 55 23 * * 1-5"

type WorkerLister interface {
	Workers(ctx context.Context) ([]model.User, error)
}

type LeaveChecker interface {
	ApprovedOn(ctx context.Context, userID, date string) (bool, error)
}

type AbsenceRecorder interface {
	RecordAbsence(ctx context.Context, userID, userName, date string, status model.AttendanceStatus) (bool, error)
}

// CloseResult counts what one close-out run wrote.
type CloseResult struct {
	Date   string
	Absent int
	Leave  int
}

// AttendanceCloser fills in the day for workers who never checked in:
// approved leave becomes a leave record, anything else an absence.
type AttendanceCloser struct {
	cronScheduler *cron.Cron
	schedule      string
	now           func() time.Time
	users         WorkerLister
	leave         LeaveChecker
	attendance    AbsenceRecorder
	jobID         cron.EntryID
}

func NewAttendanceCloser(schedule string, loc *time.Location, now func() time.Time, users WorkerLister, leave LeaveChecker, attendance AbsenceRecorder) *AttendanceCloser {
	if schedule == "" {
		schedule = DefaultCloseSchedule
	}
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceCloser{
		cronScheduler: cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		schedule:      schedule,
		now:           now,
		users:         users,
		leave:         leave,
		attendance:    attendance,
	}
}

// Start schedules the close-out and starts the scheduler.
func (c *AttendanceCloser) Start() error {
	var err error
	c.jobID, err = c.cronScheduler.AddFunc(c.schedule, func() {
		date := c.now().Format(time.DateOnly)
		res, err := c.Close(context.Background(), date)
		if err != nil {
			log.Printf("ERROR attendance close-out %s: %v", date, err)
			return
		}
		log.Printf("attendance close-out %s: %d absent, %d leave", res.Date, res.Absent, res.Leave)
	})
	if err != nil {
		return fmt.Errorf("schedule attendance close-out: %w", err)
	}
	c.cronScheduler.Start()
	log.Printf("attendance close-out scheduled (%s)", c.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running close-out to finish.
func (c *AttendanceCloser) Stop() {
	<-c.cronScheduler.Stop().Done()
}

// Close writes the missing records for date. Workers that already have a
// record are left untouched.
func (c *AttendanceCloser) Close(ctx context.Context, date string) (CloseResult, error) {
	res := CloseResult{Date: date}
	workers, err := c.users.Workers(ctx)
	if err != nil {
		return res, fmt.Errorf("list workers: %w", err)
	}
	for _, w := range workers {
		status := model.AttendanceStatusAbsent
		onLeave, err := c.leave.ApprovedOn(ctx, w.ID, date)
		if err != nil {
			return res, fmt.Errorf("check leave for %s: %w", w.ID, err)
		}
		if onLeave {
			status = model.AttendanceStatusLeave
		}
		wrote, err := c.attendance.RecordAbsence(ctx, w.ID, w.Name, date, status)
		if err != nil {
			return res, fmt.Errorf("record %s for %s: %w", status, w.ID, err)
		}
		if !wrote {
			continue
		}
		if onLeave {
			res.Leave++
		} else {
			res.Absent++
		}
	}
	return res, nil
}
