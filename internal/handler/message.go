package handler

import (
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/pagination"
	"hr-portal/internal/service"
)

type MessageHandler struct {
	svc   *service.MessageService
	users *service.AuthService
	auth  *Auth
}

func NewMessageHandler(svc *service.MessageService, users *service.AuthService, auth *Auth) *MessageHandler {
	return &MessageHandler{svc: svc, users: users, auth: auth}
}

func (h *MessageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/messages", h.auth.Require(h.HandleList))
	mux.HandleFunc("GET /api/messages/unread-count", h.auth.Require(h.HandleUnreadCount))
	mux.HandleFunc("POST /api/messages", h.auth.Require(h.HandleSend))
	mux.HandleFunc("POST /api/messages/{id}/read", h.auth.Require(h.HandleRead))
	mux.HandleFunc("DELETE /api/messages/{id}", h.auth.Require(h.HandleDelete))
}

func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.UserMessages(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, pagination.Paginate(msgs, queryInt(r, "page", 1), queryInt(r, "perPage", pagination.DefaultPerPage)))
}

func (h *MessageHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.UnreadCount(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"count": n})
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Subject    string `json:"subject" validate:"max=200"`
	Content    string `json:"content" validate:"required"`
}

func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	receiver, err := h.users.GetUser(r.Context(), req.ReceiverID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sender := currentUser(r)
	msg, err := h.svc.SendMessage(r.Context(), service.NewMessage{
		SenderID:     sender.ID,
		SenderName:   sender.Name,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.Name,
		Subject:      req.Subject,
		Content:      req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, msg)
}

func (h *MessageHandler) load(r *http.Request, allowed func(model.User, model.Message) bool) (*model.Message, error) {
	msg, err := h.svc.GetMessage(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if !allowed(currentUser(r), *msg) {
		return nil, service.ErrForbidden
	}
	return msg, nil
}

// HandleRead only accepts the receiver.
func (h *MessageHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.load(r, func(u model.User, m model.Message) bool { return m.ReceiverID == u.ID })
	if err != nil {
		writeError(w, r, err)
		return
	}
	msg, err = h.svc.MarkAsRead(r.Context(), msg.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, msg)
}

func (h *MessageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.load(r, func(u model.User, m model.Message) bool {
		return m.SenderID == u.ID || m.ReceiverID == u.ID
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteMessage(r.Context(), msg.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
