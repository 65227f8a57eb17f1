package audit

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Row is one indexed issuance's media-type record.
type Row struct {
	// TxIndex orders issuances within the index.
	TxIndex int64

	// TxHash identifies the issuance transaction.
	TxHash string

	// MediaType is the raw media-type string as originally submitted.
	MediaType string

	// Canonical is the canonical form recorded when the row was indexed.
	Canonical string
}

// Store provides read-only access to the issuance rows of a node's index
// database. The auditor never writes; a drifted index is evidence, not
// something to repair in place.
type Store struct {
	db    *sql.DB
	table string
}

// OpenStore opens the SQLite database at path. table names the issuance
// table and must be a plain identifier.
func OpenStore(path, table string) (*Store, error) {
	if !isIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to index database %q: %w", path, err)
	}
	return &Store{db: db, table: table}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Scan streams every issuance row in tx_index order, fetching batchSize
// rows per query, and calls fn for each. Scan stops early when fn or the
// context returns an error.
func (s *Store) Scan(ctx context.Context, batchSize int, fn func(Row) error) error {
	if batchSize <= 0 {
		batchSize = 1000
	}

	query := fmt.Sprintf(
		`SELECT tx_index, tx_hash, mime_type, canonical_mime FROM %s WHERE tx_index > ? ORDER BY tx_index LIMIT ?`,
		s.table,
	)

	after := int64(-1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := s.db.QueryContext(ctx, query, after, batchSize)
		if err != nil {
			return fmt.Errorf("failed to query %s after tx_index %d: %w", s.table, after, err)
		}

		count := 0
		for rows.Next() {
			var r Row
			if err := rows.Scan(&r.TxIndex, &r.TxHash, &r.MediaType, &r.Canonical); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan %s row: %w", s.table, err)
			}
			if err := fn(r); err != nil {
				rows.Close()
				return err
			}
			after = r.TxIndex
			count++
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed while iterating %s: %w", s.table, err)
		}
		rows.Close()

		if count < batchSize {
			return nil
		}
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
