// Package entries provides the PostgreSQL-backed repository for entry
// (file/folder) metadata.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

// PostgresRepository implements entry metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new entry and returns it with the server-assigned id.
// Only IsPublic may change afterwards; everything else is immutable.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO entries (user_id, name, type, parent_id, is_public, local_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Name, string(entry.Type), entry.ParentID, entry.IsPublic, entry.LocalRef).
		Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// GetByID returns the entry with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query :=
		`SELECT id, user_id, name, type, parent_id, is_public, local_ref, created_at FROM entries
		 WHERE id = $1
		 `

	entry := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.Name, &entry.Type, &entry.ParentID,
		&entry.IsPublic, &entry.LocalRef, &entry.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// List returns up to limit entries owned by userID under parentID, in
// creation order, skipping offset rows. An out-of-range offset yields an
// empty slice, not an error.
func (r *PostgresRepository) List(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.Entry, error) {
	query :=
		`SELECT id, user_id, name, type, parent_id, is_public, local_ref, created_at FROM entries
		 WHERE user_id = $1 AND parent_id = $2
		 ORDER BY created_at, id
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Entry{}
	for rows.Next() {
		item := &models.Entry{}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Type, &item.ParentID,
			&item.IsPublic, &item.LocalRef, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetVisibility updates the entry's public flag and returns the updated row.
// If the id does not exist, common.ErrorNotFound is returned.
func (r *PostgresRepository) SetVisibility(ctx context.Context, id string, isPublic bool) (*models.Entry, error) {
	query :=
		`UPDATE entries SET is_public = $2
		 WHERE id = $1
		 RETURNING id, user_id, name, type, parent_id, is_public, local_ref, created_at
		 `

	entry := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, id, isPublic).Scan(
		&entry.ID, &entry.UserID, &entry.Name, &entry.Type, &entry.ParentID,
		&entry.IsPublic, &entry.LocalRef, &entry.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// Count returns the total number of entries.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
