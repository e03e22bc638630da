// Package store holds the persistence collaborators of the pipeline: the
// on-disk run archive and the SQLite knowledge ledger. The core never talks
// to either directly; it sees them through the pipeline interfaces.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/pentad/internal/pipeline"
)

// Ledger is a SQLite-backed KnowledgeStore. Records land here only when the
// gate fires.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the ledger database at path. Use ":memory:"
// for an ephemeral ledger.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS knowledge (
		identifier TEXT PRIMARY KEY,
		owner      TEXT NOT NULL,
		route_id   TEXT NOT NULL,
		seed_path  TEXT NOT NULL,
		payload    BLOB NOT NULL,
		digest     TEXT NOT NULL,
		phi        REAL NOT NULL,
		delta_pi   REAL NOT NULL,
		delta_v    REAL NOT NULL,
		created_at DATETIME NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create knowledge table: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Put upserts a committed record under its identifier.
func (l *Ledger) Put(rec pipeline.KnowledgeRecord) error {
	_, err := l.db.Exec(
		`INSERT INTO knowledge
			(identifier, owner, route_id, seed_path, payload, digest, phi, delta_pi, delta_v, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			payload = excluded.payload,
			digest = excluded.digest,
			created_at = excluded.created_at`,
		rec.Identifier, rec.Owner, rec.RouteID, rec.SeedPath, rec.Payload,
		rec.Commit.Digest, rec.Proof.Phi, rec.Proof.DeltaPi, rec.Proof.DeltaV,
		rec.Commit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert knowledge record: %w", err)
	}
	return nil
}

// Entry is one committed ledger row.
type Entry struct {
	Identifier string
	Owner      string
	RouteID    string
	SeedPath   string
	Payload    []byte
	Digest     string
	Phi        float64
	DeltaPi    float64
	DeltaV     float64
	CreatedAt  time.Time
}

func (l *Ledger) List() ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT identifier, owner, route_id, seed_path, payload, digest, phi, delta_pi, delta_v, created_at
		FROM knowledge ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list knowledge records: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Identifier, &e.Owner, &e.RouteID, &e.SeedPath, &e.Payload,
			&e.Digest, &e.Phi, &e.DeltaPi, &e.DeltaV, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan knowledge record: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *Ledger) Get(identifier string) (*Entry, error) {
	var e Entry
	err := l.db.QueryRow(
		`SELECT identifier, owner, route_id, seed_path, payload, digest, phi, delta_pi, delta_v, created_at
		FROM knowledge WHERE identifier = ?`, identifier).
		Scan(&e.Identifier, &e.Owner, &e.RouteID, &e.SeedPath, &e.Payload,
			&e.Digest, &e.Phi, &e.DeltaPi, &e.DeltaV, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("load knowledge record %s: %w", identifier, err)
	}
	return &e, nil
}
