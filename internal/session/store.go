package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store holds the current session: the raw token plus its decoded
// identity. The token file is the only durable state the client keeps.
type Store struct {
	path     string
	token    string
	identity *Identity
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the token file in the per-user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "feedzztrab", "token"), nil
}

// Load restores a saved session. A missing file or a token that no
// longer decodes leaves the store anonymous; an expired token is
// removed from disk as well.
func (s *Store) Load(now time.Time) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read token file: %w", err)
	}

	token := string(data)
	identity, err := Decode(token)
	if err != nil {
		_ = os.Remove(s.path)
		return nil
	}
	if !identity.Valid(now) {
		_ = os.Remove(s.path)
		return nil
	}

	s.token = token
	s.identity = &identity
	return nil
}

// SaveToken installs a freshly obtained token and persists it. On any
// failure the store stays anonymous.
func (s *Store) SaveToken(token string, now time.Time) (Identity, error) {
	identity, err := Decode(token)
	if err != nil {
		return Identity{}, err
	}
	if !identity.Valid(now) {
		return Identity{}, fmt.Errorf("token expirado")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return Identity{}, fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return Identity{}, fmt.Errorf("write token file: %w", err)
	}

	s.token = token
	s.identity = &identity
	return identity, nil
}

// Clear forgets the session and deletes the token file.
func (s *Store) Clear() error {
	s.token = ""
	s.identity = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *Store) Token() string { return s.token }

func (s *Store) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Store) Authenticated() bool { return s.identity != nil }
