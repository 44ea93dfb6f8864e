package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"hr-portal/internal/model"
)

// Records written through a store come back field for field after a reopen.
func TestDomainRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portal.db")
	at := time.Date(2024, 9, 20, 14, 3, 0, 0, time.UTC)
	hours := 7.5

	record := model.AttendanceRecord{ID: model.AttendanceID("test01", "2024-09-20"), UserID: "test01", UserName: "김근로", Date: "2024-09-20", CheckIn: "09:00", CheckOut: "16:30", Status: model.AttendanceStatusPresent, WorkHours: &hours}
	leave := model.LeaveRequest{ID: "leave-1", UserID: "test01", UserName: "김근로", Type: model.LeaveTypeHalfDay, StartDate: "2024-09-23", EndDate: "2024-09-23", Days: 0.5, Reason: "병원", Status: model.LeaveStatusApproved, ReviewedBy: "Park", ReviewedAt: &at, CreatedAt: at}
	doc := model.Document{ID: "doc-x", UserID: "test01", UserName: "김근로", Title: "복지카드", Type: model.DocumentTypeWelfare, FileName: "card.png", UploadedAt: &at, Status: model.DocumentStatusRegistered, ReviewStatus: model.ReviewStatusApproved, ReviewedBy: "Park", ReviewNote: "ok", ReviewedAt: &at, CanDownload: true, RegistrationDate: "2024-09-20", BlobKey: "documents/doc-x/card.png"}
	wl := model.WorkLog{ID: "log-1", UserID: "test01", UserName: "김근로", Date: "2024-09-20", Title: "t", Content: "c", Tasks: []string{"a", "b"}, Feedback: "good", CreatedAt: at}

	b, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := NewAttendanceStore(b).SaveRecord(ctx, record); err != nil {
		t.Fatalf("save attendance: %v", err)
	}
	if err := NewLeaveStore(b).Create(ctx, leave); err != nil {
		t.Fatalf("save leave: %v", err)
	}
	if err := NewDocumentStore(b).Save(ctx, doc); err != nil {
		t.Fatalf("save document: %v", err)
	}
	if err := NewWorkLogStore(b).Create(ctx, wl); err != nil {
		t.Fatalf("save work log: %v", err)
	}
	b.Close(ctx)

	b, err = NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close(ctx)

	gotRecord, _ := NewAttendanceStore(b).GetRecord(ctx, "test01", "2024-09-20")
	if gotRecord == nil || !reflect.DeepEqual(*gotRecord, record) {
		t.Errorf("attendance = %#v", gotRecord)
	}
	gotLeave, _ := NewLeaveStore(b).GetByID(ctx, "leave-1")
	if gotLeave == nil || !reflect.DeepEqual(*gotLeave, leave) {
		t.Errorf("leave = %#v", gotLeave)
	}
	gotDoc, _ := NewDocumentStore(b).GetByID(ctx, "doc-x")
	if gotDoc == nil || !reflect.DeepEqual(*gotDoc, doc) {
		t.Errorf("document = %#v", gotDoc)
	}
	gotLog, _ := NewWorkLogStore(b).GetByID(ctx, "log-1")
	if gotLog == nil || !reflect.DeepEqual(*gotLog, wl) {
		t.Errorf("work log = %#v", gotLog)
	}
}
