package model

import "time"

type LeaveType string

const (
	LeaveTypeAnnual  LeaveType = "annual"
	LeaveTypeSick    LeaveType = "sick"
	LeaveTypeHalfDay LeaveType = "half-day"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

const LeaveKey = "leave_requests"

type LeaveRequest struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	UserName   string      `json:"userName"`
	Type       LeaveType   `json:"type"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Days       float64     `json:"days"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	ReviewedBy string      `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Covers reports whether date (YYYY-MM-DD) falls inside the request's range.
func (r LeaveRequest) Covers(date string) bool {
	return r.StartDate <= date && date <= r.EndDate
}
