package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository is the note store. Every operation that touches an existing
// note takes the owner's user id and matches on both id and owner in a
// single statement; a note owned by someone else behaves exactly like a
// missing one.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, userID, noteID string) (*models.Note, error)
	UpdatePartial(ctx context.Context, userID, noteID string, patch *models.NotePatch) (*models.Note, error)
	UpdatePinned(ctx context.Context, userID, noteID string, pinned bool) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID string) (*models.Note, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Note, error)
	Search(ctx context.Context, userID, query string) ([]*models.Note, error)
}
