package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested module does not exist.
var ErrNotFound = errors.New("module not found")

// GetModule fetches one module by content hash.
func (s *Store) GetModule(ctx context.Context, hash string) (*StoredModule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, root_class, ir_text
		FROM modules
		WHERE hash = ?
	`, hash)

	var m StoredModule
	if err := row.Scan(&m.Hash, &m.RootClass, &m.IRText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &m, nil
}

// ListModules returns all stored modules ordered by hash, so results are
// deterministic across reads.
func (s *Store) ListModules(ctx context.Context) ([]StoredModule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, root_class, ir_text
		FROM modules
		ORDER BY hash ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var out []StoredModule
	for rows.Next() {
		var m StoredModule
		if err := rows.Scan(&m.Hash, &m.RootClass, &m.IRText); err != nil {
			return nil, fmt.Errorf("list modules: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListPasses returns the import passes recorded for a module, ordered by
// pass token (UUIDv7, so roughly chronological).
func (s *Store) ListPasses(ctx context.Context, moduleHash string) ([]ImportPass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, module_hash, source
		FROM import_passes
		WHERE module_hash = ?
		ORDER BY id ASC
	`, moduleHash)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	defer rows.Close()

	var out []ImportPass
	for rows.Next() {
		var p ImportPass
		if err := rows.Scan(&p.ID, &p.ModuleHash, &p.Source); err != nil {
			return nil, fmt.Errorf("list passes: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
