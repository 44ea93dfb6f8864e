package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type AuthService struct {
	store  *store.UserStore
	secret []byte
	ttl    time.Duration
	now    Clock
}

func NewAuthService(st *store.UserStore, secret string, ttl time.Duration, now Clock) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{store: st, secret: []byte(secret), ttl: ttl, now: now}
}

type RegisterInput struct {
	Username   string
	Password   string
	Role       model.Role
	Name       string
	Company    string
	Department string
	Position   string
	Disability string
	JoinDate   string
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates an account whose id is the username.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, invalidf("username, password and name are required")
	}
	if in.Role != model.RoleWorker && in.Role != model.RoleCompany {
		return nil, invalidf("role %q", in.Role)
	}
	existing, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s: %w", username, ErrUserExists)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		ID:         username,
		Username:   username,
		Role:       in.Role,
		Name:       in.Name,
		Company:    in.Company,
		Department: in.Department,
		Position:   in.Position,
	}
	if in.Role == model.RoleWorker {
		user.Worker = &model.WorkerProfile{Disability: in.Disability, JoinDate: in.JoinDate}
	}
	created, err := s.store.Create(ctx, model.Account{User: user, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("%s: %w", username, ErrUserExists)
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	acct, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &acct.User, nil
}

type sessionClaims struct {
	Role model.Role `json:"role"`
	Name string     `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for user.
func (s *AuthService) IssueToken(user model.User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := sessionClaims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Authenticate validates a session token and loads its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}
	acct, err := s.store.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	return &acct.User, nil
}

// ListUsers returns every registered user ordered by id.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	accts, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	users := make([]model.User, 0, len(accts))
	for _, a := range accts {
		users = append(users, a.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *AuthService) Workers(ctx context.Context) ([]model.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	workers := users[:0]
	for _, u := range users {
		if u.IsWorker() {
			workers = append(workers, u)
		}
	}
	return workers, nil
}

// GetUser returns the user with the given id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	acct, err := s.store.GetByUsername(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acct == nil {
		return nil, notFound("user", id)
	}
	return &acct.User, nil
}
