package domain

import (
	"strings"
	"time"
)

// Folder groups wordlists. Deleting a folder never deletes its wordlists.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Validate checks if the Folder has valid data.
func (f *Folder) Validate() error {
	if f.ID == "" {
		return NewValidationError("id", "cannot be empty", nil)
	}
	if strings.TrimSpace(f.Name) == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	return nil
}
