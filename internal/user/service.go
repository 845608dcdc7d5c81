// File: internal/user/service.go
package user

import (
	"context"
	"errors"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the user business logic interface.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CreateFacilitator(ctx context.Context, actor auth.Actor, req CreateFacilitatorRequest) (*UserResponse, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
}

type service struct {
	repo   Repository
	tokens auth.TokenService
	guard  *auth.Guard
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokens auth.TokenService, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
		guard:  guard,
		logger: logger.Named("UserService"),
	}
}

// Register creates a learner account with the given credentials.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !common.IsErr(err, common.ErrNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to register user.")
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("An account with this email already exists.")
	}

	u, err := s.createAccount(ctx, req.Name, req.Email, req.Password, RoleLearner)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.String()))
	resp := u.ToResponse()
	return &resp, nil
}

// Login verifies credentials and issues an access token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if common.IsErr(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		s.logger.Error("Failed to look up user for login", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Login failed.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	token, err := s.tokens.Generate(u.ID, u.Name, string(u.Role))
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Login failed.")
	}

	return &LoginResponse{AccessToken: token, User: u.ToResponse()}, nil
}

// CreateFacilitator provisions a facilitator account. Admin only.
func (s *service) CreateFacilitator(ctx context.Context, actor auth.Actor, req CreateFacilitatorRequest) (*UserResponse, error) {
	if !s.guard.Can(actor, auth.ActionCreateFacilitator, actor.ID) {
		return nil, common.ErrForbidden.WithDetails("Only admins can create facilitator accounts.")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !common.IsErr(err, common.ErrNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create facilitator.")
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("An account with this email already exists.")
	}

	u, err := s.createAccount(ctx, req.Name, req.Email, req.Password, RoleFacilitator)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Facilitator created",
		zap.String("facilitatorID", u.ID.String()),
		zap.String("adminID", actor.ID.String()),
	)
	resp := u.ToResponse()
	return &resp, nil
}

// GetByID returns the user with the given ID.
func (s *service) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	userID, err := common.ParseUUID(id, "user ID")
	if err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

func (s *service) createAccount(ctx context.Context, name, email, password string, role Role) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create account.")
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		s.logger.Error("Failed to persist user", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create account.")
	}
	return u, nil
}
