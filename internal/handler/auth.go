package handler

import (
	"net/http"
	"time"

	"hr-portal/internal/i18n"
	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type AuthHandler struct {
	svc    *service.AuthService
	msgs   *service.MessageService
	auth   *Auth
	secure bool
}

// NewAuthHandler wires login, registration and the user directory. secure
// marks the session cookie Secure.
func NewAuthHandler(svc *service.AuthService, msgs *service.MessageService, auth *Auth, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, msgs: msgs, auth: auth, secure: secure}
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.HandleLogin)
	mux.HandleFunc("POST /api/auth/register", h.HandleRegister)
	mux.HandleFunc("POST /api/auth/logout", h.HandleLogout)
	mux.HandleFunc("GET /api/auth/me", h.auth.Require(h.HandleMe))
	mux.HandleFunc("GET /api/users/search", h.auth.Require(h.HandleSearchUsers))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, expires, err := h.svc.IssueToken(*user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, loginResponse{Token: token, ExpiresAt: expires, User: *user})
}

type registerRequest struct {
	Username   string     `json:"username" validate:"required,min=3,max=64"`
	Password   string     `json:"password" validate:"required,min=4"`
	Role       model.Role `json:"role" validate:"required,oneof=worker company"`
	Name       string     `json:"name" validate:"required"`
	Company    string     `json:"company"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Disability string     `json:"disability"`
	JoinDate   string     `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		Name:       req.Name,
		Company:    req.Company,
		Department: req.Department,
		Position:   req.Position,
		Disability: req.Disability,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, user)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, map[string]string{"message": i18n.T(r.Context(), "auth.logged_out")})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, currentUser(r))
}

func (h *AuthHandler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.msgs.SearchUsers(r.Context(), q.Get("q"), service.RoleFilter(q.Get("role")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, users)
}
