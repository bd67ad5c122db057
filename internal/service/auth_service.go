package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hntruong/quizdeck/config"
	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/model"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// Identity is the verified caller attached to a request by the auth middleware.
type Identity struct {
	UserID   uint
	PublicID string
	Username string
	IsAdmin  bool
}

type authClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	VerifyToken(tokenStr string) (*Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	hmac     []byte
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, hmac: []byte(cfg.JWTSecret)}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("username", req.Username).Msg("Register: username lookup failed")
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := model.User{
		PublicID:     uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Register: failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	log.Info().Str("username", user.Username).Str("publicID", user.PublicID).Msg("Registered new user")

	return &dto.UserResponse{PublicID: user.PublicID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login: user lookup failed")
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Login: failed to sign token")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		User:        dto.UserResponse{PublicID: user.PublicID, Username: user.Username, IsAdmin: user.IsAdmin},
	}, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &authClaims{
		Admin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.PublicID,
			Issuer:    "quizdeck",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.hmac)
}

// VerifyToken parses and validates a bearer token and re-checks the account
// state, so a ban takes effect on the next request rather than at token expiry.
func (s *authService) VerifyToken(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &authClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*authClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByPublicID(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("error loading token subject: %w", err)
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	return &Identity{
		UserID:   user.ID,
		PublicID: user.PublicID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
