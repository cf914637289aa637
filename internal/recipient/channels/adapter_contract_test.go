package channels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

type channelAdapter interface {
	CreateChannelFor(ctx context.Context, r models.Recipient) (string, error)
	DeleteChannelFor(ctx context.Context, addr models.Address) error
	UpdateRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error
	UpdateVibrate(ctx context.Context, addr models.Address, enabled bool) error
	Channel(ctx context.Context, addr models.Address) (*models.Channel, error)
	Channels(ctx context.Context) ([]models.Channel, error)
}

// runAdapterContract exercises behaviour every adapter must share. newAdapter
// returns an empty adapter whose default vibrate is disabled.
func runAdapterContract(t *testing.T, newAdapter func(t *testing.T) channelAdapter) {
	ctx := context.Background()

	t.Run("create carries the recipient's settings", func(t *testing.T) {
		a := newAdapter(t)
		r := models.NewRecipient("+15550001")
		r.MessageRingtone = models.CustomRingtone("content://media/ringtones/4")
		r.MessageVibrate = models.VibrateEnabled

		id, err := a.CreateChannelFor(ctx, r)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		ch, err := a.Channel(ctx, "+15550001")
		require.NoError(t, err)
		assert.Equal(t, id, ch.ID)
		assert.Equal(t, r.MessageRingtone, ch.Ringtone)
		assert.True(t, ch.Vibrate)
	})

	t.Run("default vibrate resolves to the adapter default", func(t *testing.T) {
		a := newAdapter(t)
		_, err := a.CreateChannelFor(ctx, models.NewRecipient("+15550002"))
		require.NoError(t, err)
		ch, err := a.Channel(ctx, "+15550002")
		require.NoError(t, err)
		assert.False(t, ch.Vibrate)
		assert.True(t, ch.Ringtone.IsUnset())
	})

	t.Run("recreate replaces the channel id", func(t *testing.T) {
		a := newAdapter(t)
		first, err := a.CreateChannelFor(ctx, models.NewRecipient("+15550003"))
		require.NoError(t, err)
		second, err := a.CreateChannelFor(ctx, models.NewRecipient("+15550003"))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		all, err := a.Channels(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, second, all[0].ID)
	})

	t.Run("updates require an existing channel", func(t *testing.T) {
		a := newAdapter(t)
		assert.ErrorIs(t, a.UpdateVibrate(ctx, "+15550004", true), sentinel.ErrNotFound)
		assert.ErrorIs(t, a.UpdateRingtone(ctx, "+15550004", models.RingtoneSilent), sentinel.ErrNotFound)
		_, err := a.Channel(ctx, "+15550004")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("updates change only their field", func(t *testing.T) {
		a := newAdapter(t)
		id, err := a.CreateChannelFor(ctx, models.NewRecipient("+15550005"))
		require.NoError(t, err)

		require.NoError(t, a.UpdateRingtone(ctx, "+15550005", models.RingtoneSilent))
		require.NoError(t, a.UpdateVibrate(ctx, "+15550005", true))

		ch, err := a.Channel(ctx, "+15550005")
		require.NoError(t, err)
		assert.Equal(t, id, ch.ID)
		assert.True(t, ch.Ringtone.IsSilent())
		assert.True(t, ch.Vibrate)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		a := newAdapter(t)
		_, err := a.CreateChannelFor(ctx, models.NewRecipient("+15550006"))
		require.NoError(t, err)

		require.NoError(t, a.DeleteChannelFor(ctx, "+15550006"))
		require.NoError(t, a.DeleteChannelFor(ctx, "+15550006"))

		_, err = a.Channel(ctx, "+15550006")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		all, err := a.Channels(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("channels are listed by recipient", func(t *testing.T) {
		a := newAdapter(t)
		for _, addr := range []models.Address{"+15550009", "+15550007", "+15550008"} {
			_, err := a.CreateChannelFor(ctx, models.NewRecipient(addr))
			require.NoError(t, err)
		}
		all, err := a.Channels(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, models.Address("+15550007"), all[0].Recipient)
		assert.Equal(t, models.Address("+15550009"), all[2].Recipient)
	})
}

func TestInMemoryAdapter(t *testing.T) {
	runAdapterContract(t, func(*testing.T) channelAdapter {
		return NewInMemory(WithDefaultVibrate(false))
	})
}

func TestInMemoryAdapter_Edit(t *testing.T) {
	a := NewInMemory(WithIDGenerator(func(addr models.Address) string { return "fixed-" + addr.String() }))
	id, err := a.CreateChannelFor(context.Background(), models.NewRecipient("+15550001"))
	require.NoError(t, err)
	assert.Equal(t, "fixed-+15550001", id)

	require.NoError(t, a.Edit("+15550001", func(ch *models.Channel) { ch.Vibrate = false }))
	ch, err := a.Channel(context.Background(), "+15550001")
	require.NoError(t, err)
	assert.False(t, ch.Vibrate)

	assert.ErrorIs(t, a.Edit("+15550002", func(*models.Channel) {}), sentinel.ErrNotFound)
}
