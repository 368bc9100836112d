package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicOnly restricts notebook queries to publicly visible rows.
// Every unauthenticated read path must filter here, at the store level,
// so a private notebook never reaches application code at all.
type PublicOnly struct{}

func (s PublicOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visibility = ?", "public")
}

// ByNotebookID filters child rows (entries, join rows) by notebook.
type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

// ByNotebookIDs filters child rows by a set of notebooks.
type ByNotebookIDs struct {
	NotebookIDs []uuid.UUID
}

func (s ByNotebookIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id IN ?", s.NotebookIDs)
}
