// Package notes provides the PostgreSQL-backed note store. Tags are stored
// as a JSONB array; pinned-first ordering uses created_on descending and id
// as tie-breaks so listings are deterministic.
package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

const noteColumns = `id, user_id, title, content, tags, is_pinned, created_on`

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	tags, err := marshalTags(note.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO notes (id, user_id, title, content, tags, is_pinned, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + noteColumns

	row := r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, tags, note.IsPinned, note.CreatedOn)

	return scanNote(row)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, noteID string) (*models.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	return scanNote(r.db.QueryRowContext(ctx, query, noteID, userID))
}

// UpdatePartial applies only the fields present in the patch, in one
// owner-scoped statement. Absent fields keep their stored values.
func (r *PostgresRepository) UpdatePartial(ctx context.Context, userID, noteID string, patch *models.NotePatch) (*models.Note, error) {

	var tags []byte
	if patch.Tags != nil {
		var err error
		if tags, err = marshalTags(*patch.Tags); err != nil {
			return nil, err
		}
	}

	query :=
		`UPDATE notes
		 SET title = COALESCE($3, title),
		     content = COALESCE($4, content),
		     tags = COALESCE($5, tags),
		     is_pinned = COALESCE($6, is_pinned)
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + noteColumns

	row := r.db.QueryRowContext(ctx, query,
		noteID, userID, patch.Title, patch.Content, tags, patch.IsPinned)

	return scanNote(row)
}

func (r *PostgresRepository) UpdatePinned(ctx context.Context, userID, noteID string, pinned bool) (*models.Note, error) {
	query :=
		`UPDATE notes SET is_pinned = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + noteColumns

	return scanNote(r.db.QueryRowContext(ctx, query, noteID, userID, pinned))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, noteID string) (*models.Note, error) {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + noteColumns

	return scanNote(r.db.QueryRowContext(ctx, query, noteID, userID))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1
		 ORDER BY is_pinned DESC, created_on DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanNotes(rows)
}

func (r *PostgresRepository) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {
	stmt :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		 ORDER BY is_pinned DESC, created_on DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, stmt, userID, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanNotes(rows)
}

func scanNote(row *sql.Row) (*models.Note, error) {
	note := &models.Note{}
	var tags []byte

	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &tags, &note.IsPinned, &note.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(tags, &note.Tags); err != nil {
		return nil, fmt.Errorf("tags decode error: %w", err)
	}

	return note, nil
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	defer rows.Close()

	result := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		var tags []byte
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &tags, &note.IsPinned, &note.CreatedOn); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &note.Tags); err != nil {
			return nil, fmt.Errorf("tags decode error: %w", err)
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("tags encode error: %w", err)
	}
	return b, nil
}
