package notes

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// InMemoryRepository keeps notes in a map guarded by a mutex. It backs
// handler and end-to-end tests; ordering and owner scoping mirror the
// Postgres repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	notes map[string]*models.Note
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{notes: make(map[string]*models.Note)}
}

func (r *InMemoryRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyNote(note)
	if stored.Tags == nil {
		stored.Tags = []string{}
	}
	r.notes[note.ID] = stored

	return copyNote(stored), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, userID, noteID string) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, err := r.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}
	return copyNote(note), nil
}

func (r *InMemoryRepository) UpdatePartial(ctx context.Context, userID, noteID string, patch *models.NotePatch) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}

	return copyNote(note), nil
}

func (r *InMemoryRepository) UpdatePinned(ctx context.Context, userID, noteID string, pinned bool) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	note.IsPinned = pinned
	return copyNote(note), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID, noteID string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	delete(r.notes, noteID)
	return copyNote(note), nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Note{}
	for _, note := range r.notes {
		if note.UserID == userID {
			result = append(result, copyNote(note))
		}
	}
	sortNotes(result)
	return result, nil
}

func (r *InMemoryRepository) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)

	result := []*models.Note{}
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) {
			result = append(result, copyNote(note))
		}
	}
	sortNotes(result)
	return result, nil
}

// findOwned must be called with the mutex held. An unowned note is reported
// as not found, never as a distinct condition.
func (r *InMemoryRepository) findOwned(userID, noteID string) (*models.Note, error) {
	note, ok := r.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return note, nil
}

// sortNotes applies the store ordering: pinned first, then newest first,
// id as the final tie-break.
func sortNotes(notes []*models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		if !notes[i].CreatedOn.Equal(notes[j].CreatedOn) {
			return notes[i].CreatedOn.After(notes[j].CreatedOn)
		}
		return notes[i].ID < notes[j].ID
	})
}

func copyNote(note *models.Note) *models.Note {
	c := *note
	c.Tags = append([]string{}, note.Tags...)
	return &c
}
