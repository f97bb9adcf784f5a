package models

import (
	"strings"
	"time"
)

type Status string

const (
	StatusNew        Status = "nuovo"
	StatusInProgress Status = "in_corso"
)

// ParseStatus maps an incoming status string to its enum value, with
// newly created projects defaulting to the new status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.TrimSpace(s)) {
	case "":
		return StatusNew, true
	case StatusNew:
		return StatusNew, true
	case StatusInProgress:
		return StatusInProgress, true
	}
	return "", false
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Versioned
}
