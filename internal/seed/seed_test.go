package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/night-walker/backend/internal/auth"
	"github.com/anonto42/night-walker/backend/internal/seed"
	"github.com/anonto42/night-walker/backend/internal/store"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDemo(t *testing.T) {
	clock := util.NewStubClock()
	st := store.New(nil, store.WithClock(clock))
	service := auth.NewService(st, auth.NewMemorySessionStore(clock), auth.NewTokenIssuer("secret", time.Hour, clock),
		auth.WithClock(clock), auth.WithBcryptCost(bcrypt.MinCost))

	seeded, err := seed.Demo(st, service, clock.Now())
	require.NoError(t, err)
	require.True(t, seeded)

	_, user, err := service.Login(context.Background(), "cosmic@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "user1", user.ID)
	require.Len(t, st.ListNotifications("user1"), 1)
	require.Len(t, st.Feed("user1"), 2)

	seeded, err = seed.Demo(st, service, clock.Now())
	require.NoError(t, err)
	require.False(t, seeded)
}
