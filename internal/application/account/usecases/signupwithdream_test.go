package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

func TestSignupWithDream(t *testing.T) {
	auth := &mockAuthProvider{}
	provisioner := &mockProvisioner{}
	dreams := &mockDreamRepository{}
	uc := NewSignupWithDreamUseCase(auth, provisioner, dreams, markdown.NewService(), logger.NewNopLogger())

	text := "I was standing at the edge of a frozen lake while someone called my name from the far shore"
	result, err := uc.Execute(context.Background(), SignupWithDreamCommand{
		Email:     " New@Example.com ",
		Password:  "hunter22",
		DreamText: text,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, []string{"user-1|new@example.com"}, provisioner.calls)

	require.Len(t, dreams.created, 1)
	entry := dreams.created[0]
	assert.Equal(t, result.DreamID, entry.ID())
	assert.Equal(t, "user-1", entry.UserID())
	assert.Equal(t, text[:50]+"...", entry.Title())
	assert.Equal(t, len(strings.Fields(text)), entry.WordCount())
}

func TestSignupWithDream_Errors(t *testing.T) {
	valid := SignupWithDreamCommand{Email: "a@example.com", Password: "pw123456", DreamText: "a dream"}

	tests := []struct {
		name         string
		cmd          SignupWithDreamCommand
		auth         *mockAuthProvider
		provisionErr error
		dreamErr     error
		noElevated   bool
		noProvision  bool
		expectedCode int
		expectedType apperrors.ErrorType
		expectedMsg  string
	}{
		{
			name:         "missing dream text",
			cmd:          SignupWithDreamCommand{Email: "a@example.com", Password: "pw"},
			auth:         &mockAuthProvider{},
			expectedCode: 400,
			expectedMsg:  "Email, password, and dream text are required",
		},
		{
			name:         "missing elevated dream store",
			cmd:          valid,
			auth:         &mockAuthProvider{},
			noElevated:   true,
			expectedCode: 500,
			expectedType: apperrors.ErrorTypeMisconfiguration,
		},
		{
			name:         "missing elevated provisioner",
			cmd:          valid,
			auth:         &mockAuthProvider{},
			noProvision:  true,
			expectedCode: 500,
			expectedType: apperrors.ErrorTypeMisconfiguration,
		},
		{
			name: "provider rejects",
			cmd:  valid,
			auth: &mockAuthProvider{SignUpFunc: func(ctx context.Context, email, password string) (*authprovider.SignUpResult, error) {
				return nil, &authprovider.RejectedError{StatusCode: 422, Message: "User already registered"}
			}},
			expectedCode: 400,
			expectedMsg:  "User already registered",
		},
		{
			name: "provider unreachable",
			cmd:  valid,
			auth: &mockAuthProvider{SignUpFunc: func(ctx context.Context, email, password string) (*authprovider.SignUpResult, error) {
				return nil, errors.New("dial tcp: timeout")
			}},
			expectedCode: 500,
			expectedType: apperrors.ErrorTypeUpstream,
		},
		{
			name:         "dream save fails",
			cmd:          valid,
			auth:         &mockAuthProvider{},
			dreamErr:     errors.New("insert failed"),
			expectedCode: 500,
			expectedMsg:  dreamSaveFailedMessage,
		},
		{
			name:         "provisioning fails",
			cmd:          valid,
			auth:         &mockAuthProvider{},
			provisionErr: errors.New("insert failed"),
			expectedCode: 500,
			expectedMsg:  dreamSaveFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var provisioner AccountProvisioner = &mockProvisioner{err: tt.provisionErr}
			if tt.noProvision {
				provisioner = nil
			}
			var dreams dream.Repository = &mockDreamRepository{CreateErr: tt.dreamErr}
			if tt.noElevated {
				dreams = nil
			}
			uc := NewSignupWithDreamUseCase(tt.auth, provisioner, dreams, nil, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.expectedCode, appErr.Code)
			if tt.expectedType != "" {
				assert.Equal(t, tt.expectedType, appErr.Type)
			}
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, appErr.Message)
			}
		})
	}
}
