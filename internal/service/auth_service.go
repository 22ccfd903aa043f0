package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/config"
	"github.com/Mouasahmedislem/paintello-atelier/internal/middleware"
	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const denylistPrefix = "auth:denylist:"

// AuthService 认证服务，签发带角色声明的 JWT
type AuthService struct {
	users  *repository.UserRepository
	rdb    *redis.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewAuthService(users *repository.UserRepository, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, rdb: rdb, cfg: cfg, logger: logger}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (s *AuthService) Register(req RegisterRequest) (*entity.User, string, error) {
	role := req.Role
	if role == "" {
		role = entity.RoleOperator
	}
	if !entity.ValidUserRole(role) {
		return nil, "", entity.Validationf("invalid role: %s", role)
	}

	exists, err := s.users.ExistsByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, "", entity.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", entity.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(user); err != nil {
		s.logger.Warn("Failed to record last login", zap.Error(err))
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.Expire)),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Logout 将 token jti 加入吊销名单直到过期；未配置 Redis 时为空操作
func (s *AuthService) Logout(ctx context.Context, claims *middleware.Claims) error {
	if s.rdb == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, denylistPrefix+claims.ID, "1", ttl).Err()
}

// IsTokenRevoked 实现 middleware.TokenChecker
func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil {
		return false
	}
	n, err := s.rdb.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		s.logger.Warn("Revocation check failed", zap.Error(err))
		return false
	}
	return n > 0
}

func (s *AuthService) GetUser(id string) (*entity.User, error) {
	return s.users.GetByID(id)
}

func (s *AuthService) ListUsers() ([]entity.User, error) {
	return s.users.List()
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

func (s *AuthService) UpdateProfile(id string, req UpdateProfileRequest) (*entity.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) UpdatePassword(id, current, newPassword string) error {
	if len(newPassword) < 6 {
		return entity.Validationf("password must be at least 6 characters")
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return entity.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.users.Update(user)
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUser 管理员维护用户
func (s *AuthService) UpdateUser(id string, req UpdateUserRequest) (*entity.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !entity.ValidUserRole(*req.Role) {
			return nil, entity.Validationf("invalid role: %s", *req.Role)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) DeleteUser(id string) error {
	return s.users.Delete(id)
}
