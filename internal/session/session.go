// Package session holds the signed-in user as an explicit context with a
// load/save/clear lifecycle, instead of ad-hoc reads of shared storage from
// every protected view.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/models"
)

// ErrNotSignedIn is returned when no user is present. Callers treat it as
// the redirect-to-login signal.
var ErrNotSignedIn = errors.New("not signed in")

// StorageKey is the fixed key the serialized user is persisted under.
const StorageKey = "user"

// Store persists one serialized user under StorageKey.
type Store interface {
	Read() ([]byte, error) // nil, nil when nothing is stored
	Write(data []byte) error
	Clear() error
}

// Session is the authentication context passed to protected views. Load once
// at application start; SignIn/SignOut keep the store in sync.
type Session struct {
	store Store
	user  *models.User
}

// New creates a Session over the given store. Call Load before Current.
func New(store Store) *Session {
	return &Session{store: store}
}

// Load restores the persisted user, if any. An empty store is not an error;
// it just leaves the session signed out.
func (s *Session) Load() error {
	data, err := s.store.Read()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		s.user = nil
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("failed to decode stored session: %w", err)
	}
	s.user = &user
	return nil
}

// SignIn records the user and persists it.
func (s *Session) SignIn(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Write(data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.user = user
	return nil
}

// SignOut clears the session and its persisted state.
func (s *Session) SignOut() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.user = nil
	return nil
}

// Current returns the signed-in user or ErrNotSignedIn.
func (s *Session) Current() (*models.User, error) {
	if s.user == nil {
		return nil, ErrNotSignedIn
	}
	return s.user, nil
}

// FileStore persists the session as a JSON file named after StorageKey.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.dir, StorageKey+".json")
}

// Read returns the stored session bytes, or nil when none exist.
func (f *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write stores the session bytes.
func (f *FileStore) Write(data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path(), data, 0o600)
}

// Clear removes the stored session. Clearing an empty store is a no-op.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns the stored bytes, or nil when empty.
func (m *MemoryStore) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores the bytes.
func (m *MemoryStore) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

// Clear empties the store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
