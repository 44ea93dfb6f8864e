package handler

import (
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type ChatHandler struct {
	svc  *service.ChatService
	auth *Auth
}

func NewChatHandler(svc *service.ChatService, auth *Auth) *ChatHandler {
	return &ChatHandler{svc: svc, auth: auth}
}

func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/chat/rooms", h.auth.Require(h.HandleRooms))
	mux.HandleFunc("POST /api/chat/rooms", h.auth.Require(h.HandleCreateRoom))
	mux.HandleFunc("GET /api/chat/rooms/{id}/messages", h.auth.Require(h.HandleMessages))
	mux.HandleFunc("POST /api/chat/rooms/{id}/messages", h.auth.Require(h.HandleSend))
	mux.HandleFunc("POST /api/chat/rooms/{id}/read", h.auth.Require(h.HandleRead))
}

func (h *ChatHandler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.RoomsFor(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rooms)
}

type createRoomRequest struct {
	Name         string             `json:"name"`
	Participants []string           `json:"participants" validate:"required,min=1,dive,required"`
	Type         model.ChatRoomType `json:"type" validate:"required,oneof=direct group"`
}

// HandleCreateRoom always includes the creator as a participant.
func (h *ChatHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	participants := append([]string{user.ID}, req.Participants...)
	room, err := h.svc.CreateRoom(r.Context(), req.Name, participants, req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, room)
}

// member loads the room in the path and checks the current user is in it.
func (h *ChatHandler) member(r *http.Request) (*model.ChatRoom, error) {
	room, err := h.svc.GetRoom(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(currentUser(r).ID) {
		return nil, service.ErrForbidden
	}
	return room, nil
}

func (h *ChatHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	room, err := h.member(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	msgs, err := h.svc.ChatMessages(r.Context(), room.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, msgs)
}

type chatMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ChatHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	room, err := h.member(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	msg, err := h.svc.SendMessage(r.Context(), room.ID, user.ID, user.Name, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, msg)
}

func (h *ChatHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	room, err := h.member(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	room, err = h.svc.MarkRoomAsRead(r.Context(), room.ID, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, room.ViewFor(user.ID))
}
