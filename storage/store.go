package storage

// Collection keys used by the application. Each key holds one JSON
// document: the note and project arrays (most recently saved first) and
// the authenticated flag.
const (
	KeyNotes         = "notes"
	KeyProjects      = "projects"
	KeyAuthenticated = "authenticated"
)

// Store is the durable key-value backing for the entity collections.
// It is injected into the services that persist state so tests can
// substitute an in-memory implementation.
type Store interface {
	// Load unmarshals the document stored under key into dest and
	// reports whether the key existed.
	Load(key string, dest any) (bool, error)
	Save(key string, value any) error
	Delete(key string) error
}
