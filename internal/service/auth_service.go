package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"reflecto-be/internal/config"
	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/mailer"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"

	"reflecto-be/pkg/events"
	pktNats "reflecto-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	authCfg        config.AuthConfig
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	authCfg config.AuthConfig,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		authCfg:        authCfg,
		logger:         log,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if existing != nil {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "email already registered", Field: "email"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:            uuid.New(),
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		PasswordHash:  &hashStr,
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusPending,
		EmailVerified: false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// User plus verification token must land together.
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	otpCode, err := generateOTP()
	if err != nil {
		return nil, err
	}

	verificationToken := &entity.EmailVerificationToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     otpCode,
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}

	if err := uow.UserRepository().CreateEmailVerificationToken(ctx, verificationToken); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	go func() {
		if emailErr := s.emailService.SendOTP(user.Email, otpCode); emailErr != nil {
			s.logger.Error("Auth", "Failed to send OTP email", map[string]interface{}{
				"email": logger.MaskEmail(user.Email),
				"error": emailErr.Error(),
			})
		}
	}()

	s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if user == nil {
		return apperror.NotFound("user")
	}

	// Verifying twice is a no-op.
	if user.Status == entity.UserStatusActive {
		return nil
	}

	tokenEntity, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.OwnedBy{UserID: user.Id},
		specification.ByToken{Token: req.Token},
	)
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if tokenEntity == nil {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "invalid verification code", Field: "token"}
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "verification code expired", Field: "token"}
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().ActivateUser(ctx, user.Id); err != nil {
		return apperror.StoreUnavailable(err)
	}
	_ = uow.UserRepository().DeleteEmailVerificationToken(ctx, tokenEntity.Id)

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invalidCredentials := &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "invalid credentials"}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if user == nil {
		return nil, invalidCredentials
	}

	if user.PasswordHash == nil {
		return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "account uses social login"}
	}

	if user.Status == entity.UserStatusPending || !user.EmailVerified {
		return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "email not verified"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "account is blocked"}
	}

	signedToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: hashToken(rawRefreshToken),
			ExpiresAt: time.Now().Add(s.authCfg.RefreshTokenTTL),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, apperror.StoreUnavailable(err)
		}
	}

	s.publishEvent(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
		"device":  userAgent,
	})

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		User: dto.UserDTO{
			Id:           user.Id,
			Email:        user.Email,
			DisplayName:  user.DisplayName,
			PublicHandle: user.PublicHandle,
			Role:         string(user.Role),
		},
	}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		// Never reveal whether the address is registered.
		return nil
	}

	token := uuid.New().String()
	resetToken := &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		Used:      false,
		CreatedAt: time.Now(),
	}

	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return apperror.StoreUnavailable(err)
	}

	go func() {
		if emailErr := s.emailService.SendResetToken(user.Email, token); emailErr != nil {
			s.logger.Error("Auth", "Failed to send reset email", map[string]interface{}{
				"email": logger.MaskEmail(user.Email),
				"error": emailErr.Error(),
			})
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenEntity, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.ByToken{Token: req.Token})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if tokenEntity == nil {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "invalid or expired reset token", Field: "token"}
	}
	if tokenEntity.Used {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "reset token already used", Field: "token"}
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "reset token expired", Field: "token"}
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: tokenEntity.UserId})
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	if user == nil {
		return apperror.NotFound("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	if err := uow.Begin(ctx); err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	user.PasswordHash = &hashStr
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.UserRepository().MarkPasswordResetTokenUsed(ctx, tokenEntity.Id); err != nil {
		return apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().RevokeRefreshTokenByHash(ctx, hashToken(refreshToken))
}

func (s *authService) signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.authCfg.AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("Auth", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
