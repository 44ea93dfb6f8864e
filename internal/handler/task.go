package handler

import (
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type TaskHandler struct {
	svc   *service.TaskService
	users *service.AuthService
	auth  *Auth
}

func NewTaskHandler(svc *service.TaskService, users *service.AuthService, auth *Auth) *TaskHandler {
	return &TaskHandler{svc: svc, users: users, auth: auth}
}

func (h *TaskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tasks", h.auth.Require(h.HandleMine))
	mux.HandleFunc("PATCH /api/tasks/{id}/status", h.auth.Require(h.HandleStatus))

	mux.HandleFunc("POST /api/company/tasks", h.auth.RequireRole(model.RoleCompany, h.HandleCreate))
	mux.HandleFunc("GET /api/company/tasks", h.auth.RequireRole(model.RoleCompany, h.HandleAll))
	mux.HandleFunc("DELETE /api/company/tasks/{id}", h.auth.RequireRole(model.RoleCompany, h.HandleDelete))
}

func (h *TaskHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.UserTasks(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tasks)
}

func (h *TaskHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.AllTasks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tasks)
}

type createTaskRequest struct {
	AssignedTo  string             `json:"assignedTo" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority" validate:"required,oneof=high medium low"`
	DueDate     string             `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	assignee, err := h.users.GetUser(r.Context(), req.AssignedTo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	task, err := h.svc.CreateTask(r.Context(), service.NewTask{
		AssignedTo:     assignee.ID,
		AssignedToName: assignee.Name,
		AssignedBy:     user.ID,
		AssignedByName: user.Name,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, task)
}

type taskStatusRequest struct {
	Status model.TaskStatus `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// HandleStatus lets the assignee or any company user move a task.
func (h *TaskHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var req taskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := r.PathValue("id")
	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user := currentUser(r); !user.IsCompany() && task.AssignedTo != user.ID {
		writeError(w, r, service.ErrForbidden)
		return
	}
	task, err = h.svc.UpdateTaskStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, task)
}

func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
