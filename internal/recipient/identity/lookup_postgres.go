package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prefsync/internal/recipient/models"
)

// PostgresLookup reads the identity_records table.
type PostgresLookup struct {
	pool *pgxpool.Pool
}

func NewPostgresLookup(pool *pgxpool.Pool) *PostgresLookup {
	return &PostgresLookup{pool: pool}
}

func (l *PostgresLookup) FetchRemoteIdentity(ctx context.Context, addr models.Address) (*models.IdentityRecord, error) {
	var (
		rec    models.IdentityRecord
		status int16
	)
	err := l.pool.QueryRow(ctx, `
		SELECT address, identity_key, verified_status, first_use, recorded_at
		FROM identity_records
		WHERE address = $1
	`, addr.String()).Scan(&rec.Address, &rec.IdentityKey, &status, &rec.FirstUse, &rec.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch identity record: %w", err)
	}
	rec.VerifiedStatus = models.VerifiedStatus(status)
	return &rec, nil
}

// Save upserts rec. Identity records are written by the key-exchange
// pipeline; this is used for seeding.
func (l *PostgresLookup) Save(ctx context.Context, rec models.IdentityRecord) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO identity_records (address, identity_key, verified_status, first_use, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (address) DO UPDATE SET
			identity_key = EXCLUDED.identity_key,
			verified_status = EXCLUDED.verified_status,
			first_use = EXCLUDED.first_use,
			recorded_at = EXCLUDED.recorded_at
	`, rec.Address.String(), rec.IdentityKey, int16(rec.VerifiedStatus), rec.FirstUse, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("save identity record: %w", err)
	}
	return nil
}
