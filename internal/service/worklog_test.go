package service

import (
	"context"
	"errors"
	"testing"

	"hr-portal/internal/store"
)

func TestWorkLogUpdateKeepsFeedback(t *testing.T) {
	ctx := context.Background()
	c := newStepClock(2024, 3, 4, 17, 30)
	svc := NewWorkLogService(store.NewWorkLogStore(store.NewMemoryBackend()), c.now)

	wl, err := svc.CreateWorkLog(ctx, "w1", "Kim", "Monday", "Sorted invoices", []string{" invoices ", "", "mail"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if wl.Date != "2024-03-04" || len(wl.Tasks) != 2 || wl.Tasks[0] != "invoices" {
		t.Fatalf("created = %#v", wl)
	}
	if _, err := svc.AddFeedback(ctx, wl.ID, "Nice work"); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	got, err := svc.UpdateWorkLog(ctx, wl.ID, "Monday", "Sorted invoices and mail", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Feedback != "Nice work" || got.Content != "Sorted invoices and mail" || len(got.Tasks) != 0 {
		t.Fatalf("updated = %#v", got)
	}

	// Several logs on one day are allowed.
	if _, err := svc.CreateWorkLog(ctx, "w1", "Kim", "Monday, later", "More", nil); err != nil {
		t.Fatalf("second log: %v", err)
	}
	logs, _ := svc.UserWorkLogs(ctx, "w1")
	if len(logs) != 2 {
		t.Fatalf("logs = %d", len(logs))
	}
	if _, err := svc.GetWorkLog(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: err = %v", err)
	}
}
