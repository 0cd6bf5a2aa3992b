package services

import (
	"context"
	"errors"
	"time"

	"cartalk/config"
	"cartalk/internal/domain/user"
	"cartalk/internal/repository"
	cartalk_errors "cartalk/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	Token string
	User  UserInfo
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// Register hashes the password and inserts the user. Uniqueness of the email
// is enforced by the store's unique index, not by a prior existence check, so
// concurrent registrations with the same email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegister(in); err != nil {
		return err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}

	newUser := &user.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	return s.userRepo.Create(ctx, newUser)
}

// Login verifies the credentials and mints an access token. An unknown email
// and a wrong password both come back as ErrUnauthorized so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := validateLogin(in); err != nil {
		return LoginResult{}, err
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, cartalk_errors.ErrNotFound) {
			return LoginResult{}, cartalk_errors.ErrUnauthorized
		}
		return LoginResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, cartalk_errors.ErrUnauthorized
	}

	token, err := s.newAccessToken(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token: token,
		User:  UserInfo{Name: u.Name, Email: u.Email},
	}, nil
}

// Profile returns the profile for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (UserInfo, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, cartalk_errors.ErrNotFound) {
			return UserInfo{}, cartalk_errors.ErrUnauthorized
		}
		return UserInfo{}, err
	}
	return UserInfo{Name: u.Name, Email: u.Email}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, cartalk_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, cartalk_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, cartalk_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, cartalk_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) newAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, cartalk_errors.ErrInvalidInput):
		return 400
	case errors.Is(err, cartalk_errors.ErrAlreadyExists):
		return 400
	case errors.Is(err, cartalk_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, cartalk_errors.ErrNotFound):
		return 404
	case errors.Is(err, cartalk_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}

func validateRegister(in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return cartalk_errors.ErrInvalidInput
	}
	return nil
}

func validateLogin(in LoginInput) error {
	if in.Email == "" || in.Password == "" {
		return cartalk_errors.ErrInvalidInput
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
