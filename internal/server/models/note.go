package models

import "time"

// Note is a single note owned by exactly one user. UserID is immutable after
// creation; every store operation on a note is scoped by it.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}

// NotePatch describes a partial update. Nil fields are left untouched;
// IsPinned is a pointer so an explicit false is distinguishable from absent.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

// Empty reports whether the patch would change nothing.
func (p *NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.IsPinned == nil
}
