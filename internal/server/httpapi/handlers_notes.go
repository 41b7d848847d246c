package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/labstack/echo/v4"
)

type addNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`
}

// editNoteRequest uses pointers throughout so the handler can tell an
// explicit value (including `"isPinned": false`) from an absent field.
type editNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

type updatePinnedRequest struct {
	IsPinned *bool `json:"isPinned"`
}

func (s *Server) handleAddNote(c echo.Context) error {

	req := &addNoteRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body!")
	}

	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "Title is required")
	}
	if req.Content == "" {
		return fail(c, http.StatusBadRequest, "Content is required")
	}

	ctx := c.Request().Context()

	note, err := s.notes.Add(ctx, callerID(c), req.Title, req.Content, req.Tags, req.IsPinned)
	if err != nil {
		s.logger.Error(ctx, "add note failed", "userId", callerID(c), "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Note added successfully", echo.Map{"note": note})
}

func (s *Server) handleEditNote(c echo.Context) error {

	req := &editNoteRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body!")
	}

	patch := &models.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	}
	if patch.Empty() {
		return fail(c, http.StatusBadRequest, "No changes provided!")
	}

	ctx := c.Request().Context()
	noteID := c.Param("noteId")

	note, err := s.notes.Edit(ctx, callerID(c), noteID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusNotFound, "Note not found!")
		}
		s.logger.Error(ctx, "edit note failed", "noteId", noteID, "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Note updated successfully.", echo.Map{"note": note})
}

func (s *Server) handleDeleteNote(c echo.Context) error {

	ctx := c.Request().Context()
	noteID := c.Param("noteId")

	if err := s.notes.Delete(ctx, callerID(c), noteID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusNotFound, "Note not found or you are not authorized!")
		}
		s.logger.Error(ctx, "delete note failed", "noteId", noteID, "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Note deleted successfully.", nil)
}

func (s *Server) handleListNotes(c echo.Context) error {

	ctx := c.Request().Context()

	result, err := s.notes.List(ctx, callerID(c))
	if err != nil {
		s.logger.Error(ctx, "list notes failed", "userId", callerID(c), "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	message := "Notes fetched successfully."
	if len(result) == 0 {
		message = "No notes found"
	}

	return ok(c, http.StatusOK, message, echo.Map{"notes": result})
}

func (s *Server) handleUpdatePinned(c echo.Context) error {

	req := &updatePinnedRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body!")
	}

	if req.IsPinned == nil {
		return fail(c, http.StatusBadRequest, "Pinned value is required!")
	}

	ctx := c.Request().Context()
	noteID := c.Param("noteId")

	note, err := s.notes.SetPinned(ctx, callerID(c), noteID, *req.IsPinned)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusNotFound, "Note not found!")
		}
		s.logger.Error(ctx, "pin update failed", "noteId", noteID, "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Pin value changed successfully", echo.Map{"note": note})
}

func (s *Server) handleSearchNotes(c echo.Context) error {

	query := c.QueryParam("query")
	if query == "" {
		return fail(c, http.StatusBadRequest, "Search query is required!")
	}

	ctx := c.Request().Context()

	result, err := s.notes.Search(ctx, callerID(c), query)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return fail(c, http.StatusBadRequest, "Search query is required!")
		}
		s.logger.Error(ctx, "search failed", "userId", callerID(c), "error", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Searched notes retrieved successfully.", echo.Map{"notes": result})
}
