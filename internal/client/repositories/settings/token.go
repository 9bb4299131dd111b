package settings

import (
	"context"

	"github.com/dverenev/priceadmin/internal/common"
)

// TokenStore adapts a Repository to the labeled slot holding the session
// token. It satisfies the transport layer's TokenSource.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Token returns the persisted token, or "" when none is stored.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.SettingAuthToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.SettingAuthToken, []byte(token))
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SettingAuthToken)
}
