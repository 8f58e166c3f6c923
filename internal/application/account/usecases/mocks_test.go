package usecases

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
)

type mockAuthProvider struct {
	SignUpFunc       func(ctx context.Context, email, password string) (*authprovider.SignUpResult, error)
	ExchangeCodeFunc func(ctx context.Context, code, codeVerifier string) (*authprovider.Session, error)
}

func (m *mockAuthProvider) SignUp(ctx context.Context, email, password string) (*authprovider.SignUpResult, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password)
	}
	return &authprovider.SignUpResult{UserID: "user-1", Email: email}, nil
}

func (m *mockAuthProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*authprovider.Session, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code, codeVerifier)
	}
	return &authprovider.Session{AccessToken: "at", RefreshToken: "rt", UserID: "user-1", Email: "dreamer@example.com"}, nil
}

type mockProvisioner struct {
	err   error
	calls []string
}

func (m *mockProvisioner) Execute(ctx context.Context, userID, email string) error {
	m.calls = append(m.calls, userID+"|"+email)
	return m.err
}

type mockDreamRepository struct {
	CreateErr error
	created   []*dream.Entry
}

func (m *mockDreamRepository) Create(ctx context.Context, entry *dream.Entry, metadata *dream.Metadata) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.created = append(m.created, entry)
	return nil
}

func (m *mockDreamRepository) GetByID(ctx context.Context, userID, dreamID string) (*dream.Entry, error) {
	return nil, dream.ErrDreamNotFound
}

func (m *mockDreamRepository) GetMetadata(ctx context.Context, dreamID string) (*dream.Metadata, error) {
	return nil, nil
}

func (m *mockDreamRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*dream.Entry, int64, error) {
	return nil, 0, nil
}
