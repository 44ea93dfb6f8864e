package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type AttendanceHandler struct {
	svc  *service.AttendanceService
	auth *Auth
	now  service.Clock
}

func NewAttendanceHandler(svc *service.AttendanceService, auth *Auth, now service.Clock) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, auth: auth, now: now}
}

func (h *AttendanceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/attendance/checkin", h.auth.Require(h.HandleCheckIn))
	mux.HandleFunc("POST /api/attendance/checkout", h.auth.Require(h.HandleCheckOut))
	mux.HandleFunc("GET /api/attendance/today", h.auth.Require(h.HandleToday))
	mux.HandleFunc("GET /api/attendance/history", h.auth.Require(h.HandleHistory))
	mux.HandleFunc("GET /api/attendance/calendar", h.auth.Require(h.HandleCalendar))

	mux.HandleFunc("GET /api/company/attendance/today", h.auth.RequireRole(model.RoleCompany, h.HandleCompanyToday))
	mux.HandleFunc("GET /api/company/attendance", h.auth.RequireRole(model.RoleCompany, h.HandleRange))
	mux.HandleFunc("GET /api/company/attendance/export", h.auth.RequireRole(model.RoleCompany, h.HandleExport))
	mux.HandleFunc("POST /api/company/attendance/absence", h.auth.RequireRole(model.RoleCompany, h.HandleAbsence))
}

func (h *AttendanceHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	record, err := h.svc.CheckIn(r.Context(), user.ID, user.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, record)
}

func (h *AttendanceHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.CheckOut(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, record)
}

// HandleToday writes null when the user has no record for today.
func (h *AttendanceHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.TodayAttendance(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, record)
}

func (h *AttendanceHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context(), currentUser(r).ID, queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, records)
}

func (h *AttendanceHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	days, err := h.svc.Calendar(r.Context(), currentUser(r).ID, year, time.Month(month))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, days)
}

func (h *AttendanceHandler) HandleCompanyToday(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.AllToday(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, records)
}

// rangeParams defaults to the last 30 days ending today.
func (h *AttendanceHandler) rangeParams(r *http.Request) (string, string) {
	now := h.now()
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if to == "" {
		to = now.Format(time.DateOnly)
	}
	if from == "" {
		from = now.AddDate(0, 0, -29).Format(time.DateOnly)
	}
	return from, to
}

func (h *AttendanceHandler) HandleRange(w http.ResponseWriter, r *http.Request) {
	from, to := h.rangeParams(r)
	records, err := h.svc.Range(r.Context(), from, to, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, records)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *AttendanceHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	from, to := h.rangeParams(r)
	var buf bytes.Buffer
	rows, err := h.svc.ExportAttendance(r.Context(), from, to, &buf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance_%s_%s.xlsx"`, from, to))
	w.Header().Set("X-Row-Count", fmt.Sprint(rows))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ERROR writing export: %v", err)
	}
}

type absenceRequest struct {
	UserID   string                 `json:"userId" validate:"required"`
	UserName string                 `json:"userName"`
	Date     string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Status   model.AttendanceStatus `json:"status" validate:"required,oneof=absent leave"`
}

func (h *AttendanceHandler) HandleAbsence(w http.ResponseWriter, r *http.Request) {
	var req absenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	written, err := h.svc.RecordAbsence(r.Context(), req.UserID, req.UserName, req.Date, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"written": written})
}
