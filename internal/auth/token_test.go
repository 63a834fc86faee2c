package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/auth"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/stretchr/testify/require"
)

func TestTokenFollowsInjectedClock(t *testing.T) {
	clock := util.NewStubClock()
	clock.SetNow(time.Date(2001, 1, 1, 12, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, clock)

	token, err := tokens.Issue("u1", "s1", clock.Now())
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "s1", claims.ID)

	clock.Advance(59 * time.Minute)
	_, err = tokens.Parse(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = tokens.Parse(token)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestTokenIssuedInTheFutureRejected(t *testing.T) {
	clock := util.NewStubClock()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, clock)

	token, err := tokens.Issue("u1", "s1", clock.Now().Add(10*time.Minute))
	require.NoError(t, err)
	_, err = tokens.Parse(token)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestResolveAfterClockMoves(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.clock.SetNow(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC))

	token, user, err := env.service.Signup(ctx, signupRequest())
	require.NoError(t, err)

	env.clock.Advance(time.Second)
	resolved, err := env.service.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	env.clock.Advance(time.Hour)
	_, err = env.service.Resolve(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
