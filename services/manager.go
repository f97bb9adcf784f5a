package services

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"minerva/api/errs"
	"minerva/models"
	"minerva/storage"
)

type NoteInput struct {
	ID        string
	Title     string
	Content   string
	Category  string
	ProjectID string
}

type ProjectInput struct {
	ID          string
	Name        string
	Description string
	Status      string
}

// Manager owns the canonical in-memory note and project collections,
// both ordered most recently created first. Every mutation is validated
// before any state changes and resyncs the backing store afterwards; a
// store write failure is logged and the in-memory state stays
// authoritative for the rest of the session.
type Manager struct {
	mu       sync.RWMutex
	notes    []models.Note
	projects []models.Project
	store    storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Load reads both collections from the store. Missing keys leave the
// collections empty, corrupt documents surface as errors.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.store.Load(storage.KeyNotes, &m.notes); err != nil {
		return err
	}
	if _, err := m.store.Load(storage.KeyProjects, &m.projects); err != nil {
		return err
	}
	return nil
}

func (m *Manager) Notes() []models.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	notes := make([]models.Note, len(m.notes))
	copy(notes, m.notes)
	return notes
}

func (m *Manager) Projects() []models.Project {
	m.mu.RLock()
	defer m.mu.RUnlock()
	projects := make([]models.Project, len(m.projects))
	copy(projects, m.projects)
	return projects
}

func (m *Manager) Note(id string) (models.Note, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.findNote(id); i >= 0 {
		return m.notes[i], true
	}
	return models.Note{}, false
}

func (m *Manager) Project(id string) (models.Project, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.findProject(id); i >= 0 {
		return m.projects[i], true
	}
	return models.Project{}, false
}

// SaveNote creates a note, or updates it when the input id matches an
// existing one. An unknown non-empty id falls back to create with a
// fresh identifier.
func (m *Manager) SaveNote(input NoteInput) (models.Note, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || input.ProjectID == "" {
		return models.Note{}, errs.ErrMissingField
	}
	category, ok := models.ParseCategory(input.Category)
	if !ok {
		return models.Note{}, errs.ErrInvalidCategory
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findProject(input.ProjectID) < 0 {
		return models.Note{}, errs.ErrProjectNotFound
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        input.ID,
		Title:     input.Title,
		Content:   input.Content,
		Category:  category,
		ProjectID: input.ProjectID,
		Timestamp: now,
	}

	if i := m.findNote(input.ID); i >= 0 {
		note.ID = m.notes[i].ID
		note.Versioned = m.notes[i].Versioned.Clone()
		note.RecordSave(now)
		m.notes[i] = note
	} else {
		note.ID = models.NewID()
		note.RecordSave(now)
		m.notes = append([]models.Note{note}, m.notes...)
	}

	m.persist(storage.KeyNotes, m.notes)
	return note, nil
}

// DeleteNote removes the note with the given id. Missing ids are a
// silent no-op.
func (m *Manager) DeleteNote(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findNote(id)
	if i < 0 {
		return
	}
	m.notes = append(m.notes[:i], m.notes[i+1:]...)
	m.persist(storage.KeyNotes, m.notes)
}

// SaveProject creates a project, or replaces the matching one in place
// under the versioning rule when the input id is known.
func (m *Manager) SaveProject(input ProjectInput) (models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Project{}, errs.ErrMissingField
	}
	status, ok := models.ParseStatus(input.Status)
	if !ok {
		return models.Project{}, errs.ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	project := models.Project{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Timestamp:   now,
	}

	if i := m.findProject(input.ID); i >= 0 {
		project.Versioned = m.projects[i].Versioned.Clone()
		project.RecordSave(now)
		m.projects[i] = project
	} else {
		project.ID = models.NewID()
		project.RecordSave(now)
		m.projects = append([]models.Project{project}, m.projects...)
	}

	m.persist(storage.KeyProjects, m.projects)
	return project, nil
}

// DeleteProject removes the project with the given id. Notes that
// reference it are kept and become orphans.
func (m *Manager) DeleteProject(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findProject(id)
	if i < 0 {
		return
	}
	m.projects = append(m.projects[:i], m.projects[i+1:]...)
	m.persist(storage.KeyProjects, m.projects)
}

func (m *Manager) findNote(id string) int {
	if id == "" {
		return -1
	}
	for i := range m.notes {
		if m.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) findProject(id string) int {
	if id == "" {
		return -1
	}
	for i := range m.projects {
		if m.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persist(key string, value any) {
	if err := m.store.Save(key, value); err != nil {
		log.Error().
			Err(err).
			Str("collection", key).
			Msg("failed to persist collection")
	}
}
