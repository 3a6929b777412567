package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalSchema = `
	CREATE TABLE IF NOT EXISTS reel_journal (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		ig_link       TEXT NOT NULL,
		title         TEXT NOT NULL,
		remote_status INTEGER NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS reel_journal_username_idx
		ON reel_journal (username, created_at DESC);
`

type PostgresJournal struct {
	pool *pgxpool.Pool
}

func NewPostgresJournal(pool *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{pool: pool}
}

func (r *PostgresJournal) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, journalSchema); err != nil {
		return fmt.Errorf("create reel_journal: %w", err)
	}
	return nil
}

func (r *PostgresJournal) Append(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO reel_journal (username, ig_link, title, remote_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query, entry.Username, entry.IGLink, entry.Title, entry.RemoteStatus)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// ListByUser returns the newest entries first.
func (r *PostgresJournal) ListByUser(ctx context.Context, username string, limit int) ([]models.JournalEntry, error) {
	query := `
		SELECT id, username, ig_link, title, remote_status, created_at
		FROM reel_journal
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return entries, nil
}
