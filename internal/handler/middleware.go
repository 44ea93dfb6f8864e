package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hr-portal/internal/i18n"
	"hr-portal/internal/model"
	"hr-portal/internal/service"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware logs each request and counts it by route pattern and status.
type Middleware struct {
	requests *prometheus.CounterVec
}

func NewMiddleware(reg prometheus.Registerer) *Middleware {
	return &Middleware{
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "hr_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"method", "pattern", "status"}),
	}
}

// Wrap applies request id, locale negotiation, logging and metrics to next.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		locale := i18n.Negotiate(r.Header.Get("Accept-Language"))
		r = r.WithContext(i18n.WithLocale(r.Context(), locale))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		log.Printf("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), reqID)
	})
}

const sessionCookie = "jwt"

type userCtxKey struct{}

func withUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// currentUser returns the signed-in user. Only valid behind Auth.Require.
func currentUser(r *http.Request) model.User {
	u, _ := r.Context().Value(userCtxKey{}).(model.User)
	return u
}

// Auth resolves the session token from the Authorization header or the
// jwt cookie.
type Auth struct {
	svc *service.AuthService
}

func NewAuth(svc *service.AuthService) *Auth {
	return &Auth{svc: svc}
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Require rejects requests without a valid session.
func (a *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			writeJSONStatus(w, http.StatusUnauthorized, errorResponse{Error: i18n.T(r.Context(), "error.unauthorized")})
			return
		}
		user, err := a.svc.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r.WithContext(withUser(r.Context(), *user)))
	}
}

// RequireRole is Require plus a role check.
func (a *Auth) RequireRole(role model.Role, next http.HandlerFunc) http.HandlerFunc {
	return a.Require(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != role {
			writeError(w, r, service.ErrForbidden)
			return
		}
		next(w, r)
	})
}
