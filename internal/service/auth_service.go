package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
}

type authService struct {
	repo       repository.UserRepository
	rdb        *redis.Client
	secret     string
	tokenTTL   time.Duration
	loginLimit time.Duration
	log        *logger.Logger
}

func NewAuthService(repo repository.UserRepository, rdb *redis.Client, secret string, tokenTTL, loginLimit time.Duration, log *logger.Logger) AuthService {
	return &authService{
		repo:       repo,
		rdb:        rdb,
		secret:     secret,
		tokenTTL:   tokenTTL,
		loginLimit: loginLimit,
		log:        log,
	}
}

// Login authenticates by exact stored-credential comparison. The store keeps
// credentials unhashed (a known defect inherited from the deployed schema);
// unknown username and wrong password collapse into the same error so the
// response does not leak which usernames exist.
func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, input.Username, "login", s.loginLimit)
	if err != nil {
		s.log.Error("login rate limit check failed", "error", err)
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		s.log.Error("login lookup failed", "username", input.Username, "error", err)
		return nil, err
	}

	if user.Password != input.Password {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	// A successful login releases the throttle window so the user is not
	// locked out of an immediate re-login.
	if err := ClearRateLimit(ctx, s.rdb, input.Username, "login"); err != nil {
		s.log.Warn("failed to clear login rate limit", "username", input.Username, "error", err)
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	user.Password = ""

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
