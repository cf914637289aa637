package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
	txcontext "prefsync/pkg/platform/tx"
)

// PostgresStore persists recipient preferences in the recipient_preferences
// table. A NULL mute_until means mute was never set; a NULL message_ringtone
// means the ringtone is unset and an empty string means explicit silence.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed preference store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Get(ctx context.Context, addr models.Address) (*models.Recipient, error) {
	query := `
		SELECT address, is_group, registered, mute_until, message_ringtone,
			message_vibrate, color, notification_channel
		FROM recipient_preferences
		WHERE address = $1
	`
	var (
		r        models.Recipient
		muted    sql.NullInt64
		ringtone sql.NullString
		vibrate  int
		color    sql.NullString
		channel  sql.NullString
	)
	err := s.execer(ctx).QueryRowContext(ctx, query, addr.String()).Scan(
		&r.Address, &r.IsGroup, &r.Registered, &muted, &ringtone, &vibrate, &color, &channel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get recipient preferences: %w", err)
	}

	r.MuteUntil = muted.Int64
	if ringtone.Valid {
		r.MessageRingtone = models.CustomRingtone(ringtone.String)
	}
	r.MessageVibrate, err = models.VibrateFromID(vibrate)
	if err != nil {
		return nil, fmt.Errorf("get recipient preferences: %w", err)
	}
	r.Color = models.DefaultColor
	if color.Valid {
		r.Color = models.MaterialColor(color.String)
	}
	r.NotificationChannel = channel.String
	return &r, nil
}

func (s *PostgresStore) Save(ctx context.Context, r models.Recipient) error {
	query := `
		INSERT INTO recipient_preferences (
			address, is_group, registered, mute_until, message_ringtone,
			message_vibrate, color, notification_channel, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (address) DO UPDATE SET
			is_group = EXCLUDED.is_group,
			registered = EXCLUDED.registered,
			mute_until = EXCLUDED.mute_until,
			message_ringtone = EXCLUDED.message_ringtone,
			message_vibrate = EXCLUDED.message_vibrate,
			color = EXCLUDED.color,
			notification_channel = EXCLUDED.notification_channel,
			updated_at = now()
	`
	var muted sql.NullInt64
	if r.MuteUntil != 0 {
		muted = sql.NullInt64{Int64: r.MuteUntil, Valid: true}
	}
	_, err := s.execer(ctx).ExecContext(ctx, query,
		r.Address.String(),
		r.IsGroup,
		int(r.Registered),
		muted,
		nullRingtone(r.MessageRingtone),
		r.MessageVibrate.ID(),
		r.Color.String(),
		nullString(r.NotificationChannel),
	)
	if err != nil {
		return fmt.Errorf("save recipient preferences: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetMuted(ctx context.Context, addr models.Address, until int64) error {
	return s.setColumn(ctx, addr, "mute_until", until)
}

func (s *PostgresStore) SetMessageRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error {
	return s.setColumn(ctx, addr, "message_ringtone", nullRingtone(ringtone))
}

func (s *PostgresStore) SetMessageVibrate(ctx context.Context, addr models.Address, vibrate models.VibrateState) error {
	return s.setColumn(ctx, addr, "message_vibrate", vibrate.ID())
}

func (s *PostgresStore) SetColor(ctx context.Context, addr models.Address, color models.MaterialColor) error {
	return s.setColumn(ctx, addr, "color", color.String())
}

func (s *PostgresStore) SetNotificationChannel(ctx context.Context, addr models.Address, channelID string) error {
	return s.setColumn(ctx, addr, "notification_channel", nullString(channelID))
}

func (s *PostgresStore) ListNotificationChannels(ctx context.Context) (map[models.Address]string, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT address, notification_channel
		FROM recipient_preferences
		WHERE notification_channel IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("list notification channels: %w", err)
	}
	defer rows.Close()

	out := make(map[models.Address]string)
	for rows.Next() {
		var addr, channel string
		if err := rows.Scan(&addr, &channel); err != nil {
			return nil, fmt.Errorf("scan notification channel: %w", err)
		}
		out[models.Address(addr)] = channel
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notification channels: %w", err)
	}
	return out, nil
}

// setColumn upserts a single column. column is always one of the literals
// above, never caller input.
func (s *PostgresStore) setColumn(ctx context.Context, addr models.Address, column string, value any) error {
	query := fmt.Sprintf(`
		INSERT INTO recipient_preferences (address, %[1]s, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address) DO UPDATE SET
			%[1]s = EXCLUDED.%[1]s,
			updated_at = now()
	`, column)
	if _, err := s.execer(ctx).ExecContext(ctx, query, addr.String(), value); err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	return nil
}

func nullRingtone(r models.Ringtone) sql.NullString {
	if r.IsUnset() {
		return sql.NullString{}
	}
	return sql.NullString{String: r.URI, Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
