package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error)
	Delete(ctx context.Context, actorID, userID string) (*CascadeResult, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users     repository.UserRepository
	cascade   CascadeService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(users repository.UserRepository, cascade CascadeService, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{
		users:     users,
		cascade:   cascade,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Unavailable("failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     strings.ToLower(req.Username),
		Email:        strings.ToLower(req.Email),
		FullName:     req.FullName,
		Avatar:       req.Avatar,
		CoverImage:   req.CoverImage,
		Password:     string(hashed),
		Role:         domain.RoleUser,
		WatchHistory: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// uniqueness of username/email is enforced by the store's unique
	// indexes, not by a look-before-insert
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "User registered", logger.Fields("user_id", user.ID))
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *domain.User
	var err error
	switch {
	case req.Email != "":
		user, err = s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	case req.Username != "":
		user, err = s.users.FindByUsername(ctx, strings.ToLower(req.Username))
	default:
		return nil, apperror.Invalid("username or email is required")
	}
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	}, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.CoverImage != "" {
		updates["cover_image"] = req.CoverImage
	}
	if len(updates) == 0 {
		return nil, apperror.Invalid("nothing to update")
	}
	return s.users.Update(ctx, userID, updates)
}

// Delete removes the user document and then fans out the cascade over every
// dependent collection. Cleanup failures never undo the user deletion; they
// surface in the returned result and in logs/metrics.
func (s *userService) Delete(ctx context.Context, actorID, userID string) (*CascadeResult, error) {
	if actorID != userID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !actor.IsAdmin() {
			return nil, apperror.Unauthorized("only the account owner or an admin can delete this account")
		}
	}

	if _, err := s.users.Delete(ctx, userID); err != nil {
		return nil, err
	}

	result := s.cascade.CleanupUser(ctx, userID)

	logger.Info(logger.EventGeneral, "User deleted", logger.Fields(
		"user_id", userID,
		"actor", actorID,
		"cleanup_failures", len(result.Failed),
	))
	return result, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) signAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperror.Unavailable("failed to sign access token", err)
	}
	return signed, nil
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		Role:       string(user.Role),
	}
}
