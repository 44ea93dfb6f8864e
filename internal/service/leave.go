package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type LeaveService struct {
	store  *store.LeaveStore
	now    Clock
	notify Notifier
}

func NewLeaveService(st *store.LeaveStore, now Clock, n Notifier) *LeaveService {
	return &LeaveService{store: st, now: now, notify: orNop(n)}
}

// LeaveDays returns 0.5 for a half day, else the inclusive number of
// calendar days from start to end.
func LeaveDays(leaveType model.LeaveType, startDate, endDate string) (float64, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, invalidf("end date %s before start date %s", endDate, startDate)
	}
	if leaveType == model.LeaveTypeHalfDay {
		return 0.5, nil
	}
	return float64(end.Sub(start)/(24*time.Hour)) + 1, nil
}

func validLeaveType(t model.LeaveType) bool {
	switch t {
	case model.LeaveTypeAnnual, model.LeaveTypeSick, model.LeaveTypeHalfDay:
		return true
	}
	return false
}

func (s *LeaveService) CreateLeaveRequest(ctx context.Context, userID, userName string, leaveType model.LeaveType, startDate, endDate, reason string) (*model.LeaveRequest, error) {
	if userID == "" {
		return nil, invalidf("user id is required")
	}
	if !validLeaveType(leaveType) {
		return nil, invalidf("leave type %q", leaveType)
	}
	days, err := LeaveDays(leaveType, startDate, endDate)
	if err != nil {
		return nil, err
	}
	now := s.now()
	req := model.LeaveRequest{
		ID:        newID("leave", now),
		UserID:    userID,
		UserName:  userName,
		Type:      leaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      days,
		Reason:    reason,
		Status:    model.LeaveStatusPending,
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	notify(ctx, s.notify, formatLeaveMsg(req, "Pending"))
	return &req, nil
}

// UpdateLeaveStatus records a reviewer's decision. A second call overwrites
// the first; there is no terminal-state guard.
func (s *LeaveService) UpdateLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, reviewedBy string) (*model.LeaveRequest, error) {
	if status != model.LeaveStatusApproved && status != model.LeaveStatusRejected {
		return nil, invalidf("leave status %q", status)
	}
	now := s.now()
	req, err := s.store.Update(ctx, id, func(r *model.LeaveRequest) error {
		r.Status = status
		r.ReviewedBy = reviewedBy
		r.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update leave request: %w", err)
	}
	if req == nil {
		return nil, notFound("leave request", id)
	}
	label := "**APPROVED**"
	if status == model.LeaveStatusRejected {
		label = "**REJECTED**"
	}
	notify(ctx, s.notify, formatLeaveMsg(*req, label))
	return req, nil
}

func (s *LeaveService) GetLeaveRequest(ctx context.Context, id string) (*model.LeaveRequest, error) {
	req, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	if req == nil {
		return nil, notFound("leave request", id)
	}
	return req, nil
}

func (s *LeaveService) UserLeaveRequests(ctx context.Context, userID string) ([]model.LeaveRequest, error) {
	reqs, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user leave requests: %w", err)
	}
	sortLeaveNewestFirst(reqs)
	return reqs, nil
}

func (s *LeaveService) AllLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error) {
	reqs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get leave requests: %w", err)
	}
	sortLeaveNewestFirst(reqs)
	return reqs, nil
}

// ApprovedOn reports whether an approved request of the user covers date.
func (s *LeaveService) ApprovedOn(ctx context.Context, userID, date string) (bool, error) {
	reqs, err := s.store.GetByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("get leave by date: %w", err)
	}
	for _, r := range reqs {
		if r.UserID == userID && r.Status == model.LeaveStatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func sortLeaveNewestFirst(reqs []model.LeaveRequest) {
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].CreatedAt.After(reqs[j].CreatedAt) })
}

func formatLeaveMsg(r model.LeaveRequest, status string) string {
	msg := fmt.Sprintf("#### Leave Request\n| | |\n|:--|:--|\n| **User** | %s |\n| **Type** | %s |\n| **Dates** | %s ~ %s (%g) |\n| **Reason** | %s |\n| **Status** | %s |",
		r.UserName, r.Type, r.StartDate, r.EndDate, r.Days, r.Reason, status)
	if r.ReviewedBy != "" {
		msg += fmt.Sprintf("\n| **Reviewed by** | %s |", r.ReviewedBy)
	}
	return msg
}
