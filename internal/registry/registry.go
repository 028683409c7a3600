// Package registry persists node personas in SQLite so that a daemon keeps
// the same Weyl lane and node ID across restarts.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/dilipvamsi/chrono-id/chronoid"
)

const (
	// timeFormat is the ISO 8601 format used for all timestamps in SQLite.
	timeFormat = "2006-01-02T15:04:05.000Z"
)

// Record is one persisted node persona.
type Record struct {
	// Node is the registry key, typically a host or service name.
	Node string
	// Variant is the catalog variant this node generates.
	Variant string
	// NodeID is the stable node field value mixed through the persona.
	NodeID uint64
	// Persona holds the Weyl lane selection for this node.
	Persona chronoid.Persona
	// CreatedAt is when the record was first created.
	CreatedAt time.Time
	// RotatedAt is when the persona was last replaced.
	RotatedAt time.Time
}

// Store is a durable persona registry backed by SQLite. It is suitable for
// single-node deployments; multiple daemons sharing one database coordinate
// through the busy_timeout PRAGMA.
type Store struct {
	db *sql.DB
}

// Open creates a Store with the given DSN and initializes the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing SQLite database: %w", err)
	}
	return s, nil
}

// initDB applies PRAGMAs and creates the required tables.
// This is safe to call multiple times (idempotent via IF NOT EXISTS).
func (s *Store) initDB() error {
	// Apply PRAGMAs for performance and correctness.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("executing %q: %w", p, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version    INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS personas (
			node       TEXT PRIMARY KEY,
			variant    TEXT NOT NULL,
			node_id    INTEGER NOT NULL,
			node_idx   INTEGER NOT NULL,
			node_salt  INTEGER NOT NULL,
			seq_idx    INTEGER NOT NULL,
			seq_salt   INTEGER NOT NULL,
			seq_offset INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			rotated_at TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	// Insert initial schema version if not present.
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (1, ?)`,
		time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting schema version: %w", err)
	}

	return nil
}

// Close closes the underlying SQLite database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get retrieves a persona record by node name. Returns (nil, nil) when the
// node is not registered.
func (s *Store) Get(ctx context.Context, node string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT node, variant, node_id, node_idx, node_salt, seq_idx, seq_salt, seq_offset,
		        created_at, rotated_at
		 FROM personas WHERE node = ?`,
		node,
	)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting persona %q: %w", node, err)
	}
	return rec, nil
}

// LoadOrCreate returns the stored persona for the node, creating a fresh one
// when the node is unregistered. The variant name must exist in the catalog;
// its sequence width sizes the SeqOffset of new personas.
func (s *Store) LoadOrCreate(ctx context.Context, node, variant string, src chronoid.EntropySource) (*Record, error) {
	existing, err := s.Get(ctx, node)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	v, ok := chronoid.Lookup(variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant: %s", variant)
	}

	now := time.Now().UTC()
	rec := &Record{
		Node:      node,
		Variant:   v.Name,
		NodeID:    src.Uint64() & 0xFFFF,
		Persona:   chronoid.NewPersona(src, v.SeqBits),
		CreatedAt: now,
		RotatedAt: now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO personas
			(node, variant, node_id, node_idx, node_salt, seq_idx, seq_salt, seq_offset,
			 created_at, rotated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Node,
		rec.Variant,
		int64(rec.NodeID),
		int64(rec.Persona.NodeIdx),
		int64(rec.Persona.NodeSalt),
		int64(rec.Persona.SeqIdx),
		int64(rec.Persona.SeqSalt),
		int64(rec.Persona.SeqOffset),
		rec.CreatedAt.Format(timeFormat),
		rec.RotatedAt.Format(timeFormat),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "PRIMARY KEY") {
			// Lost a race with a concurrent create; the stored record wins.
			return s.Get(ctx, node)
		}
		return nil, fmt.Errorf("creating persona %q: %w", node, err)
	}
	return rec, nil
}

// Rotate replaces the node's persona and node ID with fresh values and
// returns the updated record.
func (s *Store) Rotate(ctx context.Context, node string, src chronoid.EntropySource) (*Record, error) {
	existing, err := s.Get(ctx, node)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("node not registered: %s", node)
	}

	v, ok := chronoid.Lookup(existing.Variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant: %s", existing.Variant)
	}

	existing.NodeID = src.Uint64() & 0xFFFF
	existing.Persona = chronoid.NewPersona(src, v.SeqBits)
	existing.RotatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`UPDATE personas
		 SET node_id = ?, node_idx = ?, node_salt = ?, seq_idx = ?, seq_salt = ?,
		     seq_offset = ?, rotated_at = ?
		 WHERE node = ?`,
		int64(existing.NodeID),
		int64(existing.Persona.NodeIdx),
		int64(existing.Persona.NodeSalt),
		int64(existing.Persona.SeqIdx),
		int64(existing.Persona.SeqSalt),
		int64(existing.Persona.SeqOffset),
		existing.RotatedAt.Format(timeFormat),
		node,
	)
	if err != nil {
		return nil, fmt.Errorf("rotating persona %q: %w", node, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("node not registered: %s", node)
	}
	return existing, nil
}

// Delete removes the node's persona record.
func (s *Store) Delete(ctx context.Context, node string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM personas WHERE node = ?`, node,
	)
	if err != nil {
		return fmt.Errorf("deleting persona %q: %w", node, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("node not registered: %s", node)
	}
	return nil
}

// List returns all persona records ordered by node name.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT node, variant, node_id, node_idx, node_salt, seq_idx, seq_salt, seq_offset,
		        created_at, rotated_at
		 FROM personas ORDER BY node`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing personas: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning persona row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating persona rows: %w", err)
	}
	return records, nil
}

// Count returns the number of registered nodes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM personas`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting personas: %w", err)
	}
	return count, nil
}

// scanRecord scans one persona row via the given Scan function, so that
// *sql.Row and *sql.Rows share the column mapping.
func scanRecord(scan func(...any) error) (*Record, error) {
	var rec Record
	var nodeID, nodeIdx, nodeSalt, seqIdx, seqSalt, seqOffset int64
	var createdAtStr, rotatedAtStr string

	err := scan(
		&rec.Node, &rec.Variant, &nodeID,
		&nodeIdx, &nodeSalt, &seqIdx, &seqSalt, &seqOffset,
		&createdAtStr, &rotatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	rec.NodeID = uint64(nodeID)
	rec.Persona = chronoid.Persona{
		NodeIdx:   uint8(nodeIdx),
		NodeSalt:  uint32(nodeSalt),
		SeqIdx:    uint8(seqIdx),
		SeqSalt:   uint32(seqSalt),
		SeqOffset: uint32(seqOffset),
	}
	rec.CreatedAt, _ = time.Parse(timeFormat, createdAtStr)
	rec.RotatedAt, _ = time.Parse(timeFormat, rotatedAtStr)
	return &rec, nil
}
