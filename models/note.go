package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryGeneral    Category = "generale"
	CategoryInProgress Category = "progetto_in_corso"
	CategoryNewProject Category = "nuovo_progetto"
)

// ParseCategory maps an incoming category string to its enum value.
// The empty string means the caller did not pick one and falls back to
// the general category.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.TrimSpace(s)) {
	case "":
		return CategoryGeneral, true
	case CategoryGeneral:
		return CategoryGeneral, true
	case CategoryInProgress:
		return CategoryInProgress, true
	case CategoryNewProject:
		return CategoryNewProject, true
	}
	return "", false
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	ProjectID string    `json:"projectId"`
	Timestamp time.Time `json:"timestamp"`
	Versioned
}

// NewID mints a collision-free entity identifier.
func NewID() string {
	id, _ := uuid.NewUUID()
	return strings.ReplaceAll(id.String(), "-", "")
}
