package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StoredModule is one content-addressed module row.
type StoredModule struct {
	Hash      string
	RootClass string
	IRText    string
}

// ImportPass is one provenance row linking a pass to the module it stored.
type ImportPass struct {
	ID         string
	ModuleHash string
	Source     string
}

// NewPassToken generates a unique token for one import pass.
// Uses UUIDv7 so tokens sort roughly by creation time.
func NewPassToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WriteModule inserts a module record. Writes are idempotent: the hash is
// content-derived, so a duplicate insert is silently ignored.
func (s *Store) WriteModule(ctx context.Context, m StoredModule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO modules (hash, root_class, ir_text)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, m.Hash, m.RootClass, m.IRText)
	if err != nil {
		return fmt.Errorf("write module: %w", err)
	}
	return nil
}

// WritePass records an import pass against a stored module. The module
// referenced by ModuleHash must exist (foreign key constraint).
func (s *Store) WritePass(ctx context.Context, p ImportPass) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_passes (id, module_hash, source)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, p.ID, p.ModuleHash, p.Source)
	if err != nil {
		return fmt.Errorf("write pass: %w", err)
	}
	return nil
}
