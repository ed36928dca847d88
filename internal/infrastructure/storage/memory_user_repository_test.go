package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesSession(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	user.SetState(entity.StateAwaitingBitePhoto)
	require.NoError(t, repo.Save(ctx, user))

	again, err := repo.Get(ctx, 1, 11)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingBitePhoto, again.State)
	require.Equal(t, int64(11), again.ChatID)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.ErrorIs(t, repo.UpdateState(ctx, 5, entity.StateMainMenu), ErrUserNotFound)

	_, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateState(ctx, 5, entity.StateProcessing))

	user, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestMemoryUserRepository_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryUserRepository().Get(ctx, 1, 1)
	require.ErrorIs(t, err, context.Canceled)
}
