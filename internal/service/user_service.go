package service

import (
	"context"
	"strings"
	"time"

	"reflecto-be/internal/dto"
	"reflecto-be/internal/entity"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/repository/specification"
	"reflecto-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, identity *entity.Identity) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, identity *entity.Identity, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	SetPublicHandle(ctx context.Context, identity *entity.Identity, req *dto.SetPublicHandleRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) findCaller(ctx context.Context, uow unitofwork.UnitOfWork, identity *entity.Identity) (*entity.User, error) {
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: identity.Id})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, identity *entity.Identity) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findCaller(ctx, uow, identity)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, identity *entity.Identity, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findCaller(ctx, uow, identity)
	if err != nil {
		return nil, err
	}

	user.DisplayName = req.DisplayName
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return toProfileResponse(user), nil
}

func (s *userService) SetPublicHandle(ctx context.Context, identity *entity.Identity, req *dto.SetPublicHandleRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if identity == nil {
		return nil, apperror.Unauthenticated()
	}

	handle := strings.ToLower(req.Handle)

	// Handle uniqueness is checked and written in one transaction.
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	defer uow.Rollback()

	taken, err := uow.UserRepository().FindOne(ctx, specification.ByPublicHandle{Handle: handle})
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if taken != nil && taken.Id != identity.Id {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "handle already taken", Field: "handle"}
	}

	user, err := s.findCaller(ctx, uow, identity)
	if err != nil {
		return nil, err
	}

	user.PublicHandle = &handle
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}

	return toProfileResponse(user), nil
}

func toProfileResponse(user *entity.User) *dto.UserProfileResponse {
	resp := &dto.UserProfileResponse{
		Id:           user.Id,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PublicHandle: user.PublicHandle,
		Role:         string(user.Role),
		Status:       string(user.Status),
		CreatedAt:    user.CreatedAt,
	}
	if user.AvatarURL != nil {
		resp.AvatarURL = *user.AvatarURL
	}
	return resp
}
