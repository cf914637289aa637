package channels

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

const (
	fieldID           = "id"
	fieldRingtoneSet  = "ringtone_set"
	fieldRingtoneURI  = "ringtone_uri"
	fieldVibrate      = "vibrate"
	defaultKeyPrefix  = "prefsync"
	channelKeySegment = ":channel:"
	indexKeySegment   = ":channels"
)

// updateIfExists applies HSET only when the channel hash exists so an update
// never resurrects a deleted channel.
var updateIfExists = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], unpack(ARGV))
return 1
`)

// RedisAdapter stores each channel as a hash and indexes recipients with
// channels in a set.
type RedisAdapter struct {
	client   *redis.Client
	prefix   string
	settings settings
}

// NewRedis builds a Redis-backed adapter. An empty prefix uses "prefsync".
func NewRedis(client *redis.Client, prefix string, opts ...Option) *RedisAdapter {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisAdapter{client: client, prefix: prefix, settings: newSettings(opts)}
}

func (a *RedisAdapter) channelKey(addr models.Address) string {
	return a.prefix + channelKeySegment + addr.String()
}

func (a *RedisAdapter) indexKey() string {
	return a.prefix + indexKeySegment
}

// CreateChannelFor writes a fresh channel for r, replacing any existing one.
func (a *RedisAdapter) CreateChannelFor(ctx context.Context, r models.Recipient) (string, error) {
	ch := a.settings.channelFor(r)
	key := a.channelKey(r.Address)
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, encodeChannel(ch))
		pipe.SAdd(ctx, a.indexKey(), r.Address.String())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create channel: %w", err)
	}
	return ch.ID, nil
}

// DeleteChannelFor removes the channel. Deleting a missing channel succeeds.
func (a *RedisAdapter) DeleteChannelFor(ctx context.Context, addr models.Address) error {
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, a.channelKey(addr))
		pipe.SRem(ctx, a.indexKey(), addr.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

func (a *RedisAdapter) UpdateRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error {
	return a.update(ctx, addr,
		fieldRingtoneSet, strconv.FormatBool(ringtone.Set),
		fieldRingtoneURI, ringtone.URI,
	)
}

func (a *RedisAdapter) UpdateVibrate(ctx context.Context, addr models.Address, enabled bool) error {
	return a.update(ctx, addr, fieldVibrate, strconv.FormatBool(enabled))
}

func (a *RedisAdapter) Channel(ctx context.Context, addr models.Address) (*models.Channel, error) {
	values, err := a.client.HGetAll(ctx, a.channelKey(addr)).Result()
	if err != nil {
		return nil, fmt.Errorf("get channel: %w", err)
	}
	if len(values) == 0 {
		return nil, sentinel.ErrNotFound
	}
	ch := decodeChannel(addr, values)
	return &ch, nil
}

// Channels lists every indexed channel ordered by recipient. Index entries
// whose hash has disappeared are skipped.
func (a *RedisAdapter) Channels(ctx context.Context) ([]models.Channel, error) {
	members, err := a.client.SMembers(ctx, a.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	sort.Strings(members)

	pipe := a.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(members))
	for i, m := range members {
		cmds[i] = pipe.HGetAll(ctx, a.channelKey(models.Address(m)))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	out := make([]models.Channel, 0, len(members))
	for i, m := range members {
		values := cmds[i].Val()
		if len(values) == 0 {
			continue
		}
		out = append(out, decodeChannel(models.Address(m), values))
	}
	return out, nil
}

func (a *RedisAdapter) update(ctx context.Context, addr models.Address, fieldValues ...any) error {
	n, err := updateIfExists.Run(ctx, a.client, []string{a.channelKey(addr)}, fieldValues...).Int()
	if err != nil {
		return fmt.Errorf("update channel: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func encodeChannel(ch models.Channel) map[string]any {
	return map[string]any{
		fieldID:          ch.ID,
		fieldRingtoneSet: strconv.FormatBool(ch.Ringtone.Set),
		fieldRingtoneURI: ch.Ringtone.URI,
		fieldVibrate:     strconv.FormatBool(ch.Vibrate),
	}
}

func decodeChannel(addr models.Address, values map[string]string) models.Channel {
	set, _ := strconv.ParseBool(values[fieldRingtoneSet])
	vibrate, _ := strconv.ParseBool(values[fieldVibrate])
	return models.Channel{
		ID:        values[fieldID],
		Recipient: addr,
		Ringtone:  models.Ringtone{URI: values[fieldRingtoneURI], Set: set},
		Vibrate:   vibrate,
	}
}
