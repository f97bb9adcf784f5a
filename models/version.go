package models

import "time"

type VersionEntry struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Changes   string    `json:"changes"`
}

// Versioned carries the append-only save bookkeeping shared by notes
// and projects. A zero value has never been saved; RecordSave brings it
// to version 1 and appends one history entry per save after that, so
// len(VersionHistory) always equals Version.
type Versioned struct {
	Version        int            `json:"version"`
	VersionHistory []VersionEntry `json:"versionHistory"`
}

func (v *Versioned) RecordSave(now time.Time) {
	if v.Version == 0 {
		v.Version = 1
		v.VersionHistory = []VersionEntry{{
			Version:   1,
			Timestamp: now,
			Changes:   "Created: " + now.Format(time.RFC1123),
		}}
		return
	}
	v.Version++
	v.VersionHistory = append(v.VersionHistory, VersionEntry{
		Version:   v.Version,
		Timestamp: now,
		Changes:   "Updated: " + now.Format(time.RFC1123),
	})
}

// Clone copies the history so a replacement entity does not share a
// backing array with the entity it supersedes.
func (v Versioned) Clone() Versioned {
	history := make([]VersionEntry, len(v.VersionHistory))
	copy(history, v.VersionHistory)
	return Versioned{Version: v.Version, VersionHistory: history}
}
