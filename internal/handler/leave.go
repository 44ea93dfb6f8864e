package handler

import (
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type LeaveHandler struct {
	svc  *service.LeaveService
	auth *Auth
}

func NewLeaveHandler(svc *service.LeaveService, auth *Auth) *LeaveHandler {
	return &LeaveHandler{svc: svc, auth: auth}
}

func (h *LeaveHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/leave", h.auth.Require(h.HandleCreate))
	mux.HandleFunc("GET /api/leave", h.auth.Require(h.HandleMine))
	mux.HandleFunc("GET /api/company/leave", h.auth.RequireRole(model.RoleCompany, h.HandleAll))
	mux.HandleFunc("POST /api/company/leave/{id}/approve", h.auth.RequireRole(model.RoleCompany, h.review(model.LeaveStatusApproved)))
	mux.HandleFunc("POST /api/company/leave/{id}/reject", h.auth.RequireRole(model.RoleCompany, h.review(model.LeaveStatusRejected)))
}

type leaveRequest struct {
	Type      model.LeaveType `json:"type" validate:"required,oneof=annual sick half-day"`
	StartDate string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string          `json:"reason"`
}

func (h *LeaveHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	lr, err := h.svc.CreateLeaveRequest(r.Context(), user.ID, user.Name, req.Type, req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, lr)
}

func (h *LeaveHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.UserLeaveRequests(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, reqs)
}

func (h *LeaveHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.AllLeaveRequests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, reqs)
}

func (h *LeaveHandler) review(status model.LeaveStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lr, err := h.svc.UpdateLeaveStatus(r.Context(), r.PathValue("id"), status, currentUser(r).Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, lr)
	}
}
