package updatescache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"updatesbot/clients"
	"updatesbot/models"
)

func TestUpdatesCacheService_Get(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	messages := []*models.RawMessage{{ID: "m1"}, {ID: "m2"}}

	t.Run("fetches_once_within_ttl", func(t *testing.T) {
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "central", 100, "", "").Return(messages, nil).Once()

		service := NewUpdatesCacheService(mockClient, "central")
		now := base
		service.SetClock(func() time.Time { return now })

		first, err := service.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, messages, first)

		now = base.Add(4 * time.Minute)
		second, err := service.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, messages, second)

		mockClient.AssertExpectations(t)
	})

	t.Run("refetches_after_ttl", func(t *testing.T) {
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "central", 100, "", "").Return(messages, nil).Twice()

		service := NewUpdatesCacheService(mockClient, "central")
		now := base
		service.SetClock(func() time.Time { return now })

		_, err := service.Get(ctx)
		require.NoError(t, err)

		now = base.Add(6 * time.Minute)
		_, err = service.Get(ctx)
		require.NoError(t, err)

		mockClient.AssertExpectations(t)
	})

	t.Run("invalidate_forces_refetch", func(t *testing.T) {
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "central", 100, "", "").Return(messages, nil).Twice()

		service := NewUpdatesCacheService(mockClient, "central")
		service.SetClock(func() time.Time { return base })

		_, err := service.Get(ctx)
		require.NoError(t, err)

		service.Invalidate()
		_, err = service.Get(ctx)
		require.NoError(t, err)

		mockClient.AssertExpectations(t)
	})

	t.Run("error_keeps_cache_empty", func(t *testing.T) {
		mockClient := new(clients.MockDiscordClient)
		mockClient.On("FetchMessages", "central", 100, "", "").Return(nil, assert.AnError)

		service := NewUpdatesCacheService(mockClient, "central")
		service.SetClock(func() time.Time { return base })

		_, err := service.Get(ctx)
		require.Error(t, err)
		assert.False(t, service.Stats().Cached)
	})
}

func TestUpdatesCacheService_Stats(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockClient := new(clients.MockDiscordClient)
	mockClient.On("FetchMessages", "central", 100, "", "").
		Return([]*models.RawMessage{{ID: "m1"}}, nil)

	service := NewUpdatesCacheService(mockClient, "central")
	now := base
	service.SetClock(func() time.Time { return now })

	empty := service.Stats()
	assert.False(t, empty.Cached)
	assert.Nil(t, empty.LastFetch)
	assert.Equal(t, int64(300000), empty.TTLMillis)

	_, err := service.Get(ctx)
	require.NoError(t, err)

	now = base.Add(90 * time.Second)
	stats := service.Stats()
	assert.True(t, stats.Cached)
	assert.Equal(t, 1, stats.MessageCount)
	require.NotNil(t, stats.LastFetch)
	assert.Equal(t, base.UnixMilli(), *stats.LastFetch)
	assert.Equal(t, int64(90000), stats.AgeMillis)
}
