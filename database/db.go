// Package database holds the optional Postgres directory of city codes.
// Rows extend and override the built-in location tables at start-up.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"voyagent/services/location"
)

// LocationCode is one row of the directory.
type LocationCode struct {
	Name      string             `json:"name"`
	Space     location.CodeSpace `json:"space"`
	Code      string             `json:"code"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ─── Connect ──────────────────────────────────────────────────────────────────

const connectAttempts = 10

// Connect opens url and waits for the server to accept connections.
func Connect(ctx context.Context, url string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// The server may still be starting when we come up.
	for i := 0; i < connectAttempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return db, nil
		}
		logger.Info("waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	db.Close()
	return nil, fmt.Errorf("connect to database after %d attempts: %w", connectAttempts, err)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS location_codes (
		name       TEXT NOT NULL,
		space      TEXT NOT NULL,
		code       TEXT NOT NULL,
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (space, name)
	)`,
}

// Migrate creates the directory table.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── Queries ──────────────────────────────────────────────────────────────────

// SaveLocationCode inserts or replaces one directory entry.
func SaveLocationCode(ctx context.Context, db *sql.DB, lc LocationCode) error {
	name := strings.ToLower(strings.TrimSpace(lc.Name))
	code := strings.ToUpper(strings.TrimSpace(lc.Code))
	if name == "" || code == "" {
		return fmt.Errorf("location code needs a name and a code")
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO location_codes (name, space, code, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (space, name) DO UPDATE SET code = EXCLUDED.code, updated_at = NOW()`,
		name, string(lc.Space), code)
	return err
}

// ListLocationCodes returns every entry ordered by space and name.
func ListLocationCodes(ctx context.Context, db *sql.DB) ([]LocationCode, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, space, code, updated_at
		FROM location_codes ORDER BY space, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LocationCode
	for rows.Next() {
		var lc LocationCode
		var space string
		if err := rows.Scan(&lc.Name, &space, &lc.Code, &lc.UpdatedAt); err != nil {
			return nil, err
		}
		lc.Space = location.CodeSpace(space)
		out = append(out, lc)
	}
	return out, rows.Err()
}

// LoadCodes returns the built-in resolver extended with every directory
// entry. Entries in an unknown code space are skipped.
func LoadCodes(ctx context.Context, db *sql.DB) (*location.Codes, error) {
	entries, err := ListLocationCodes(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load location codes: %w", err)
	}
	return MergeCodes(location.NewCodes(), entries), nil
}

// MergeCodes folds entries into base by code space.
func MergeCodes(base *location.Codes, entries []LocationCode) *location.Codes {
	bySpace := map[location.CodeSpace]map[string]string{}
	for _, e := range entries {
		if e.Space != location.SkyID && e.Space != location.IATA {
			continue
		}
		if bySpace[e.Space] == nil {
			bySpace[e.Space] = map[string]string{}
		}
		bySpace[e.Space][e.Name] = e.Code
	}
	codes := base
	for _, space := range []location.CodeSpace{location.SkyID, location.IATA} {
		if extra := bySpace[space]; len(extra) > 0 {
			codes = codes.Merge(space, extra)
		}
	}
	return codes
}
