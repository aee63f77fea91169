package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// The kind is interpolated as a table name, so it is validated against
// the closed set of kinds before building the query.
func (r *catalogRepository) Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE code = $1)`, kind)
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, fmt.Errorf("failed to check %s code: %w", kind, err)
	}
	return exists, nil
}

func (r *catalogRepository) List(ctx context.Context, kind model.CatalogKind) ([]*model.CatalogEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := fmt.Sprintf(`SELECT id, code, name, description FROM %s ORDER BY code`, kind)
	var entries []*model.CatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return entries, nil
}
