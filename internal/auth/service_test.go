package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/auth"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/store"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token rejected")
}

type testEnv struct {
	store    *store.Store
	sessions *auth.MemorySessionStore
	clock    *util.StubClock
	service  *auth.Service
}

func newTestEnv(t *testing.T, opts ...auth.Option) *testEnv {
	t.Helper()
	clock := util.NewStubClock()
	st := store.New(nil, store.WithClock(clock))
	sessions := auth.NewMemorySessionStore(clock)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, clock)
	opts = append([]auth.Option{auth.WithClock(clock), auth.WithBcryptCost(bcrypt.MinCost)}, opts...)
	return &testEnv{
		store:    st,
		sessions: sessions,
		clock:    clock,
		service:  auth.NewService(st, sessions, tokens, opts...),
	}
}

func signupRequest() models.CreateUserRequest {
	return models.CreateUserRequest{
		Username:    gofakeit.Username(),
		Email:       gofakeit.Email(),
		Password:    "password123",
		DisplayName: gofakeit.Name(),
	}
}

func TestSignupResolve(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	req := signupRequest()

	token, user, err := env.service.Signup(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, req.Username, user.Username)
	require.NotEqual(t, req.Password, user.Password)

	resolved, err := env.service.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestSignupPasswordTooLong(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	req := signupRequest()
	req.Password = strings.Repeat("é", 40)
	_, _, err := env.service.Signup(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrInvalid)

	req.Password = strings.Repeat("a", 72)
	_, _, err = env.service.Signup(ctx, req)
	require.NoError(t, err)
}

func TestResolveBindsToTheRightUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, first, err := env.service.Signup(ctx, signupRequest())
	require.NoError(t, err)
	secondToken, second, err := env.service.Signup(ctx, signupRequest())
	require.NoError(t, err)

	resolved, err := env.service.Resolve(ctx, secondToken)
	require.NoError(t, err)
	require.Equal(t, second.ID, resolved.ID)
	require.NotEqual(t, first.ID, resolved.ID)
}

func TestSignupConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	req := signupRequest()
	_, _, err := env.service.Signup(ctx, req)
	require.NoError(t, err)

	_, _, err = env.service.Signup(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	require.Equal(t, 1, env.sessions.Len())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	req := signupRequest()
	_, user, err := env.service.Signup(ctx, req)
	require.NoError(t, err)

	token, loggedIn, err := env.service.Login(ctx, req.Email, req.Password)
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	resolved, err := env.service.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, _, err = env.service.Login(ctx, req.Email, "wrong")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, _, err = env.service.Login(ctx, "nobody@example.com", req.Password)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestResolveInvalid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.service.Resolve(ctx, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = env.service.Resolve(ctx, "mock-jwt-token")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	other := auth.NewTokenIssuer("other-secret", time.Hour, env.clock)
	forged, err := other.Issue("someone", "session", env.clock.Now())
	require.NoError(t, err)
	_, err = env.service.Resolve(ctx, forged)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestResolveUnknownSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, user, err := env.service.Signup(ctx, signupRequest())
	require.NoError(t, err)

	// correctly signed, but never stored in the session table
	token, err := auth.NewTokenIssuer("test-secret", time.Hour, env.clock).Issue(user.ID, "unknown-session", env.clock.Now())
	require.NoError(t, err)
	_, err = env.service.Resolve(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	token, _, err := env.service.Signup(ctx, signupRequest())
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(ctx, token))
	_, err = env.service.Resolve(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	clock := util.NewStubClock()
	sessions := auth.NewMemorySessionStore(clock)
	require.NoError(t, sessions.Create(ctx, "s1", "u1", time.Hour))

	userID, err := sessions.Lookup(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	clock.Advance(time.Hour)
	_, err = sessions.Lookup(ctx, "s1")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	require.Equal(t, 0, sessions.Len())
}

func TestExpiredSessionsPrunedOnCreate(t *testing.T) {
	ctx := context.Background()
	clock := util.NewStubClock()
	sessions := auth.NewMemorySessionStore(clock)
	require.NoError(t, sessions.Create(ctx, "s1", "u1", time.Hour))
	require.NoError(t, sessions.Create(ctx, "s2", "u2", 3*time.Hour))

	clock.Advance(2 * time.Hour)
	require.NoError(t, sessions.Create(ctx, "s3", "u3", time.Hour))
	require.Equal(t, 2, sessions.Len())

	_, err := sessions.Lookup(ctx, "s1")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	userID, err := sessions.Lookup(ctx, "s2")
	require.NoError(t, err)
	require.Equal(t, "u2", userID)
}

func TestFederatedLogin(t *testing.T) {
	ctx := context.Background()
	verifier := &fakeVerifier{tokens: map[string]*fbauth.Token{
		"good": {UID: "fb-1", Claims: map[string]interface{}{"email": "Night.Owl@example.com", "name": "Night Owl"}},
		"same": {UID: "fb-2", Claims: map[string]interface{}{"email": "night.owl@other.com"}},
		"bare": {UID: "fb-3", Claims: map[string]interface{}{}},
	}}
	env := newTestEnv(t, auth.WithIDTokenVerifier(verifier))

	token, user, err := env.service.FederatedLogin(ctx, "good")
	require.NoError(t, err)
	require.Equal(t, "night.owl", user.Username)
	require.Equal(t, "Night Owl", user.DisplayName)
	resolved, err := env.service.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, again, err := env.service.FederatedLogin(ctx, "good")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)

	_, other, err := env.service.FederatedLogin(ctx, "same")
	require.NoError(t, err)
	require.Equal(t, "night.owl1", other.Username)
	require.Equal(t, "night.owl", other.DisplayName)

	_, _, err = env.service.FederatedLogin(ctx, "bare")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, _, err = env.service.FederatedLogin(ctx, "forged")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestFederatedLoginDisabled(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.service.FederatedLogin(context.Background(), "anything")
	require.ErrorIs(t, err, auth.ErrFederationDisabled)
}
