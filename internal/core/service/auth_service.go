package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/core/validation"
	"github.com/acme/invoicehub/internal/port"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so a caller cannot probe which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken means the sign-up email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// AuthService owns account creation and credential verification.
type AuthService struct {
	users      port.UserRepository
	tokens     port.SessionTokens
	bcryptCost int

	newID func() string
}

func NewAuthService(users port.UserRepository, tokens port.SessionTokens, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		newID:      uuid.NewString,
	}
}

// SignUp creates an account with a bcrypt password hash. Uniqueness is a
// single atomic insert: the store's unique constraint rejects duplicates,
// so two concurrent sign-ups for one email cannot both succeed.
func (s *AuthService) SignUp(ctx context.Context, in validation.SignUpInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           s.newID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, port.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, creds validation.Credentials) (*domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return user, nil
}

// IssueSession mints a session token for an authenticated user.
func (s *AuthService) IssueSession(user domain.User) (string, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}
