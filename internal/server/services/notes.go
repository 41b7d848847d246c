package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/google/uuid"
)

// NoteService implements note CRUD and search. Every operation takes the
// caller's user id and passes it through to the owner-scoped repository;
// the service never looks a note up without it.
type NoteService struct {
	repo notes.Repository
}

func NewNoteService(repo notes.Repository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) Add(ctx context.Context, userID, title, content string, tags []string, pinned bool) (*models.Note, error) {

	note := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		IsPinned:  pinned,
		CreatedOn: time.Now().UTC(),
	}

	note, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return note, nil
}

// Edit applies a partial update. An empty patch is a validation error and
// never reaches the store.
func (s *NoteService) Edit(ctx context.Context, userID, noteID string, patch *models.NotePatch) (*models.Note, error) {

	if patch.Empty() {
		return nil, common.ErrorValidation
	}

	note, err := s.repo.UpdatePartial(ctx, userID, noteID, patch)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return note, nil
}

func (s *NoteService) SetPinned(ctx context.Context, userID, noteID string, pinned bool) (*models.Note, error) {

	note, err := s.repo.UpdatePinned(ctx, userID, noteID, pinned)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {

	if _, err := s.repo.Delete(ctx, userID, noteID); err != nil {
		return mapRepoError(err)
	}

	return nil
}

// List returns the owner's notes, pinned first. An empty result is a valid
// listing, not an error.
func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {

	result, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// Search matches the query case-insensitively against title or content,
// within the owner's notes only.
func (s *NoteService) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {

	if query == "" {
		return nil, common.ErrorValidation
	}

	result, err := s.repo.Search(ctx, userID, query)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// mapRepoError keeps not-found distinct and downgrades everything else to a
// generic internal error so no store detail leaks to clients.
func mapRepoError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return common.ErrorInternal
}
