package store

import (
	"context"

	"hr-portal/internal/model"
)

type UserStore struct {
	accounts *Table[model.Account]
}

func NewUserStore(b Backend) *UserStore {
	return &UserStore{
		accounts: NewTable(b, model.UsersKey, func(a model.Account) string { return a.User.Username }),
	}
}

// GetByUsername returns the account, or nil if not found.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return s.accounts.Find(ctx, username)
}

// Create stores a new account and reports false when the username is taken.
func (s *UserStore) Create(ctx context.Context, acct model.Account) (bool, error) {
	return s.accounts.Insert(ctx, acct)
}

func (s *UserStore) Exists(ctx context.Context) (bool, error) {
	return s.accounts.Exists(ctx)
}

func (s *UserStore) All(ctx context.Context) ([]model.Account, error) {
	return s.accounts.LoadAll(ctx)
}

func (s *UserStore) SeedIfAbsent(ctx context.Context, rows func() []model.Account) (bool, error) {
	return s.accounts.SeedIfAbsent(ctx, rows)
}
