// Package auth issues session tokens and resolves them back to the user
// they were issued for.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserDirectory is the part of the store the auth service needs
type UserDirectory interface {
	CreateUser(username, email, passwordHash, displayName string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
}

// IDTokenVerifier verifies third party ID tokens. *fbauth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// ErrFederationDisabled is returned by FederatedLogin without a verifier
var ErrFederationDisabled = errors.New("federated login is not configured")

type Service struct {
	users      UserDirectory
	sessions   SessionStore
	tokens     *TokenIssuer
	clock      util.Clock
	verifier   IDTokenVerifier
	bcryptCost int
}

type Option func(*Service)

func WithClock(clock util.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

func WithIDTokenVerifier(v IDTokenVerifier) Option {
	return func(s *Service) { s.verifier = v }
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(users UserDirectory, sessions SessionStore, tokens *TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		clock:      util.NewRealClock(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword returns the bcrypt hash of password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("password longer than 72 bytes: %w", apperrors.ErrInvalid)
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Signup registers a user and opens a session for it
func (s *Service) Signup(ctx context.Context, req models.CreateUserRequest) (string, models.User, error) {
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return "", models.User{}, err
	}
	user, err := s.users.CreateUser(req.Username, req.Email, hash, req.DisplayName)
	if err != nil {
		return "", models.User{}, err
	}
	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Login checks email and password and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", models.User{}, apperrors.ErrUnauthorized
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.User{}, apperrors.ErrUnauthorized
	}
	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Resolve maps a session token to the user it was issued for
func (s *Service) Resolve(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, fmt.Errorf("missing token: %w", apperrors.ErrUnauthenticated)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	userID, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return models.User{}, err
	}
	if userID != claims.UserID {
		return models.User{}, fmt.Errorf("session user mismatch: %w", apperrors.ErrUnauthenticated)
	}
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("session user: %v: %w", err, apperrors.ErrUnauthenticated)
	}
	return user, nil
}

// Logout revokes the session behind token
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// FederatedLogin verifies a Firebase ID token and signs in the user with
// the token's email, creating the account on first login.
func (s *Service) FederatedLogin(ctx context.Context, idToken string) (string, models.User, error) {
	if s.verifier == nil {
		return "", models.User{}, ErrFederationDisabled
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", models.User{}, fmt.Errorf("invalid ID token: %v: %w", err, apperrors.ErrUnauthorized)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", models.User{}, fmt.Errorf("ID token has no email: %w", apperrors.ErrUnauthorized)
	}
	name, _ := token.Claims["name"].(string)

	user, err := s.findOrCreate(email, name)
	if err != nil {
		return "", models.User{}, err
	}
	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", models.User{}, err
	}
	return session, user, nil
}

const maxUsernameAttempts = 100

func (s *Service) findOrCreate(email, name string) (models.User, error) {
	if user, err := s.users.GetUserByEmail(email); err == nil {
		return user, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.User{}, err
	}

	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	if name == "" {
		name = base
	}
	// federated accounts cannot sign in with a password
	hash, err := s.HashPassword(uuid.NewString())
	if err != nil {
		return models.User{}, err
	}

	for i := 0; i < maxUsernameAttempts; i++ {
		username := base
		if i > 0 {
			username = fmt.Sprintf("%s%d", base, i)
		}
		user, err := s.users.CreateUser(username, email, hash, name)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return models.User{}, err
		}
		// a concurrent login may have created the account
		if existing, lookupErr := s.users.GetUserByEmail(email); lookupErr == nil {
			return existing, nil
		}
	}
	return models.User{}, fmt.Errorf("no free username for %q: %w", base, apperrors.ErrConflict)
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.sessions.Create(ctx, sessionID, userID, s.tokens.TTL()); err != nil {
		return "", err
	}
	return s.tokens.Issue(userID, sessionID, s.clock.Now())
}
