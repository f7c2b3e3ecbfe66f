// Package registry provides durable storage for compiled IR artifacts.
//
// The registry caches the output of compilation keyed by a content hash of
// the source document, so repeated compilations of identical input can be
// served without re-running the converter. It is a convenience layer around
// the compiler, not part of the conversion contract: the converter itself
// never caches.
package registry

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no artifact exists for a source hash.
var ErrNotFound = errors.New("artifact not found")

// Artifact is one stored compilation result.
type Artifact struct {
	ID         string // uuid assigned at first registration
	SourceHash string // content hash of the source document
	IR         []byte // canonical IR JSON
}

// Registry stores compiled artifacts in SQLite.
// Uses WAL mode for concurrent read access.
type Registry struct {
	db *sql.DB
}

// Open creates or opens a registry database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// multiple times on the same path.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors under concurrent Put calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Registry{db: db}, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Put registers the compiled IR for a source document. Registration is
// idempotent on the source hash: if the source was seen before, the existing
// artifact is returned and the new IR bytes are ignored.
func (r *Registry) Put(ctx context.Context, source, irJSON []byte) (*Artifact, error) {
	hash := SourceHash(source)

	artifact := &Artifact{
		ID:         uuid.NewString(),
		SourceHash: hash,
		IR:         irJSON,
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO artifacts (id, source_hash, ir) VALUES (?, ?, ?)`,
		artifact.ID, artifact.SourceHash, artifact.IR)
	if err != nil {
		return nil, fmt.Errorf("inserting artifact: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking insert result: %w", err)
	}
	if inserted == 0 {
		// Already registered; return the original record.
		return r.Get(ctx, hash)
	}
	return artifact, nil
}

// Get looks up the artifact for a source hash.
// Returns ErrNotFound if no artifact exists.
func (r *Registry) Get(ctx context.Context, sourceHash string) (*Artifact, error) {
	var artifact Artifact
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source_hash, ir FROM artifacts WHERE source_hash = ?`,
		sourceHash).Scan(&artifact.ID, &artifact.SourceHash, &artifact.IR)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying artifact: %w", err)
	}
	return &artifact, nil
}

// List returns all artifacts in registration order.
func (r *Registry) List(ctx context.Context) ([]Artifact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_hash, ir FROM artifacts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var artifact Artifact
		if err := rows.Scan(&artifact.ID, &artifact.SourceHash, &artifact.IR); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return artifacts, nil
}
