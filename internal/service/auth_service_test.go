package service

import (
	"context"
	"testing"
	"time"

	"reflecto-be/internal/config"
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmailService hands sent codes to the test over channels. Sends
// happen on background goroutines, so captures must synchronize.
type stubEmailService struct {
	otps   chan string
	resets chan string
}

func newStubEmailService() *stubEmailService {
	return &stubEmailService{
		otps:   make(chan string, 8),
		resets: make(chan string, 8),
	}
}

func (s *stubEmailService) SendOTP(toEmail, otp string) error {
	s.otps <- otp
	return nil
}

func (s *stubEmailService) SendResetToken(toEmail, token string) error {
	s.resets <- token
	return nil
}

func (s *stubEmailService) waitReset(t *testing.T) string {
	t.Helper()
	select {
	case token := <-s.resets:
		return token
	case <-time.After(5 * time.Second):
		t.Fatal("no reset email sent")
		return ""
	}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

func newAuthService(t *testing.T) (IAuthService, *stubEmailService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := newTestFactory(t)
	emails := newStubEmailService()
	svc := NewAuthService(factory, emails, nil, testAuthConfig(), testLogger{})
	return svc, emails, factory
}

func registerAndVerify(t *testing.T, svc IAuthService, factory unitofwork.RepositoryFactory, email, password string) {
	t.Helper()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: "Ada",
	})
	require.NoError(t, err)

	// The code lands in the store together with the user.
	uow := factory.NewUnitOfWork(ctx)
	token, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.OwnedBy{UserID: registered.Id})
	require.NoError(t, err)
	require.NotNil(t, token)

	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: email, Token: token.Token}))
}

func TestAuthRegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, _, factory := newAuthService(t)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "ada@example.com",
		Password:    "correct-horse",
		DisplayName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", registered.Email)

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:       "ada@example.com",
			Password:    "another-pass",
			DisplayName: "Imposter",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "email", appErr.Field)
	})

	t.Run("login before verification is rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
		}, "127.0.0.1", "test")
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	})

	t.Run("wrong code is a validation error", func(t *testing.T) {
		err := svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
			Email: "ada@example.com",
			Token: "000000",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "token", appErr.Field)
	})

	uow := factory.NewUnitOfWork(ctx)
	token, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.OwnedBy{UserID: registered.Id})
	require.NoError(t, err)
	require.NotNil(t, token)

	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
		Email: "ada@example.com",
		Token: token.Token,
	}))

	// Verifying twice is a no-op.
	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
		Email: "ada@example.com",
		Token: token.Token,
	}))
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, factory := newAuthService(t)
	registerAndVerify(t, svc, factory, "ada@example.com", "correct-horse")

	t.Run("valid credentials produce an access token", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
		}, "127.0.0.1", "test")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Empty(t, resp.RefreshToken)
		assert.Equal(t, "ada@example.com", resp.User.Email)
	})

	t.Run("remember me issues a refresh token", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{
			Email:      "ada@example.com",
			Password:   "correct-horse",
			RememberMe: true,
		}, "127.0.0.1", "test")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.RefreshToken)

		require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	})

	// Unknown account and wrong password come back identical.
	t.Run("bad credentials are indistinguishable", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		}, "127.0.0.1", "test")
		require.Error(t, err)
		wrongPass := err.Error()

		_, err = svc.Login(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "wrong",
		}, "127.0.0.1", "test")
		require.Error(t, err)
		assert.Equal(t, wrongPass, err.Error())
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	})
}

func TestAuthPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, emails, factory := newAuthService(t)
	registerAndVerify(t, svc, factory, "ada@example.com", "correct-horse")

	t.Run("unknown address leaks nothing", func(t *testing.T) {
		require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "nobody@example.com"}))
	})

	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "ada@example.com"}))
	token := emails.waitReset(t)

	t.Run("garbage token is a validation error", func(t *testing.T) {
		err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Token:       "not-a-token",
			NewPassword: "new-password-1",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "token", appErr.Field)
	})

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "new-password-1",
	}))

	t.Run("token is single use", func(t *testing.T) {
		err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Token:       token,
			NewPassword: "new-password-2",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("only the new password works", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
		}, "127.0.0.1", "test")
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

		resp, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "new-password-1",
		}, "127.0.0.1", "test")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}
