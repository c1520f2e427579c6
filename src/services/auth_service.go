package services

import (
	"context"
	"time"

	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories"

	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceI interface {
	Register(ctx context.Context, username, password, confirmation string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, newPassword, confirmation string) error
}

type AuthService struct {
	userRepo    repositories.UserRepository
	tokenAuth   *jwtauth.JWTAuth
	tokenTTL    time.Duration
	initialCash decimal.Decimal
}

func NewAuthService(userRepo repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration, initialCash decimal.Decimal) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenAuth:   tokenAuth,
		tokenTTL:    tokenTTL,
		initialCash: initialCash,
	}
}

// Register creates a new user with the configured starting cash balance.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (*models.User, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}
	if password == "" {
		return nil, ErrInvalidPassword
	}
	if confirmation == "" {
		return nil, ErrMissingConfirmation
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "looking up username")
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}

	user := &models.User{
		Username: username,
		Hash:     string(hash),
		Cash:     s.initialCash,
	}
	if err := s.userRepo.Create(ctx, user, nil); err != nil {
		// another request can win the race between the lookup above and this
		// insert; the unique constraint on users.username is the arbiter
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, errors.Wrap(err, "creating user")
	}
	return user, nil
}

// Login verifies the credential hash and issues a bearer token carrying the
// username claim.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", errors.Wrap(err, "looking up username")
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := map[string]interface{}{"username": user.Username}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.tokenTTL)

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", errors.Wrap(err, "encoding token")
	}
	return tokenString, nil
}

// ChangePassword replaces the stored credential hash.
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword, confirmation string) error {
	if newPassword == "" {
		return ErrInvalidPassword
	}
	if confirmation == "" {
		return ErrMissingConfirmation
	}
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}

	if err := s.userRepo.UpdateHash(ctx, username, string(hash), nil); err != nil {
		return errors.Wrap(err, "updating credential hash")
	}
	return nil
}
