package handler

import (
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type WorkLogHandler struct {
	svc  *service.WorkLogService
	auth *Auth
}

func NewWorkLogHandler(svc *service.WorkLogService, auth *Auth) *WorkLogHandler {
	return &WorkLogHandler{svc: svc, auth: auth}
}

func (h *WorkLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/worklogs", h.auth.Require(h.HandleCreate))
	mux.HandleFunc("GET /api/worklogs", h.auth.Require(h.HandleMine))
	mux.HandleFunc("GET /api/worklogs/{id}", h.auth.Require(h.HandleGet))
	mux.HandleFunc("PUT /api/worklogs/{id}", h.auth.Require(h.HandleUpdate))

	mux.HandleFunc("GET /api/company/worklogs", h.auth.RequireRole(model.RoleCompany, h.HandleAll))
	mux.HandleFunc("POST /api/company/worklogs/{id}/feedback", h.auth.RequireRole(model.RoleCompany, h.HandleFeedback))
}

type workLogRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tasks   []string `json:"tasks"`
}

func (h *WorkLogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	wl, err := h.svc.CreateWorkLog(r.Context(), user.ID, user.Name, req.Title, req.Content, req.Tasks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, wl)
}

func (h *WorkLogHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.UserWorkLogs(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, logs)
}

func (h *WorkLogHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.AllWorkLogs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, logs)
}

// owned loads a work log visible to the current user.
func (h *WorkLogHandler) owned(r *http.Request) (*model.WorkLog, error) {
	wl, err := h.svc.GetWorkLog(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if user := currentUser(r); !user.IsCompany() && wl.UserID != user.ID {
		return nil, service.ErrForbidden
	}
	return wl, nil
}

func (h *WorkLogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	wl, err := h.owned(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, wl)
}

// HandleUpdate is limited to the author.
func (h *WorkLogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	wl, err := h.owned(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if wl.UserID != currentUser(r).ID {
		writeError(w, r, service.ErrForbidden)
		return
	}
	wl, err = h.svc.UpdateWorkLog(r.Context(), wl.ID, req.Title, req.Content, req.Tasks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, wl)
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

func (h *WorkLogHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	wl, err := h.svc.AddFeedback(r.Context(), r.PathValue("id"), req.Feedback)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, wl)
}
