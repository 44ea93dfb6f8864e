package model

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLeave   AttendanceStatus = "leave"
)

const AttendanceKey = "attendance_records"

// AttendanceRecord is a per-user, per-day singleton. Its ID is always
// AttendanceID(UserID, Date).
type AttendanceRecord struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	Date      string           `json:"date"`               // YYYY-MM-DD
	CheckIn   string           `json:"checkIn,omitempty"`  // HH:MM
	CheckOut  string           `json:"checkOut,omitempty"` // HH:MM
	Status    AttendanceStatus `json:"status"`
	WorkHours *float64         `json:"workHours,omitempty"`
}

// AttendanceID derives the record key for a user's day.
func AttendanceID(userID, date string) string {
	return userID + "-" + date
}
