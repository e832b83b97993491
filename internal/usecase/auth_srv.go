package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"
	"bus-ticketing/pkg/database"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// AuthService covers staff login (admin and conductor accounts) and the
// admin-only creation of conductor accounts.
type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CreateConductor(ctx context.Context, req *request.CreateConductorRequest) (*response.ConductorResponse, error)
}

type authService struct {
	repo   *repository.Repository
	db     database.PgxIface
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, db database.PgxIface, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		db:     db,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, entity.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, entity.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CreateConductor(ctx context.Context, req *request.CreateConductorRequest) (*response.ConductorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create conductor validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bus, err := s.repo.Bus.FindByID(ctx, req.AssignedBusID)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", req.AssignedBusID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered", req.Email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleConductor,
		IsActive:     true,
	}
	conductor := &entity.Conductor{
		Base:          entity.Base{CreatedAt: now, UpdatedAt: now},
		AssignedBusID: req.AssignedBusID,
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		conductor.UserID = user.ID
		return s.repo.Conductor.Create(ctx, conductor)
	})
	if err != nil {
		s.log.Error("Failed to create conductor", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create conductor: %w", err)
	}

	s.log.Info("Conductor created",
		zap.Int64("user_id", user.ID),
		zap.Int64("assigned_bus_id", req.AssignedBusID),
	)

	return &response.ConductorResponse{
		UserResponse:  response.UserToResponse(user),
		AssignedBusID: conductor.AssignedBusID,
	}, nil
}

func (s *authService) createSession(ctx context.Context, userID int64) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{CreatedAt: time.Now()},
		UserID:     userID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}
