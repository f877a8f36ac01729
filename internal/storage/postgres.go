package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/mitrajit-55/password-manager/internal/migrations"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// PostgresStore implements vault.Store using PostgreSQL.
type PostgresStore struct {
	dsn string
	db  *sql.DB
}

// NewPostgresStore creates a PostgreSQL store. Initialize connects and
// applies migrations.
func NewPostgresStore(dsn string) *PostgresStore {
	return &PostgresStore{dsn: dsn}
}

func (p *PostgresStore) Initialize(ctx context.Context) error {
	db, err := sql.Open("postgres", p.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := migrations.PostgresUp(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}

	p.db = db
	log.Info("Connected to PostgreSQL storage backend")
	return nil
}

func (p *PostgresStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresStore) Health(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("postgres not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return p.db.PingContext(ctx)
}

func (p *PostgresStore) List(ctx context.Context) ([]vault.Record, error) {
	if p.db == nil {
		return nil, fmt.Errorf("postgres not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, site, username, password FROM passwords ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list passwords: %w", err)
	}
	defer rows.Close()

	var records []vault.Record
	for rows.Next() {
		var rec vault.Record
		if err := rows.Scan(&rec.ID, &rec.Site, &rec.Username, &rec.Password); err != nil {
			return nil, fmt.Errorf("failed to scan password: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

func (p *PostgresStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	if p.db == nil {
		return vault.Record{}, fmt.Errorf("postgres not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rec := vault.Record{ID: uuid.NewString(), Fields: fields}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO passwords (id, site, username, password) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Site, rec.Username, rec.Password)
	if err != nil {
		return vault.Record{}, fmt.Errorf("failed to insert password: %w", err)
	}
	return rec, nil
}

func (p *PostgresStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	if p.db == nil {
		return false, fmt.Errorf("postgres not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// The WHERE clause skips no-op writes so the affected-row count matches
	// the modified-count semantics of the document backends.
	res, err := p.db.ExecContext(ctx,
		`UPDATE passwords
		 SET site = $2, username = $3, password = $4, updated_at = now()
		 WHERE id = $1 AND (site, username, password) IS DISTINCT FROM ($2, $3, $4)`,
		id, fields.Site, fields.Username, fields.Password)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	if p.db == nil {
		return false, fmt.Errorf("postgres not connected")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := p.db.ExecContext(ctx, `DELETE FROM passwords WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
