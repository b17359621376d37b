package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"landmark-map/internal/models"
	apperrors "landmark-map/internal/pkg/errors"
	"landmark-map/internal/repository"
)

type contextKey string

const UserContextKey contextKey = "user"

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID uint) error
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	cache      CacheService
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cache CacheService, jwtSecret string, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		cache:      cache,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	// The cached session is what VerifyToken checks tokens against, so a
	// login without it would hand out a token that never works.
	if err := s.cache.Set(ctx, sessionKey(user.ID), signed, s.sessionTTL); err != nil {
		return "", err
	}

	return signed, nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.cache.Delete(ctx, sessionKey(userID))
}

func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	rawUserID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	userID := uint(rawUserID)

	// A signed token alone is not enough: the session must still exist and
	// must match the presented token, so a logout invalidates it.
	cached, err := s.cache.Get(ctx, sessionKey(userID))
	if err != nil || cached != tokenString {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidToken
	}

	return user, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// WithUserContext attaches the authenticated user to the request context.
func WithUserContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}
