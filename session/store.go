package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
)

const (
	userFile  = "user.json"
	tokenFile = "token"
)

// Session is the locally persisted {user, token} pair that survives app
// restarts.
type Session struct {
	User  models.User
	Token string
}

// Store persists the session as two entries under a local directory,
// mirroring the mobile client's "@user" and "@token" storage keys.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load restores the persisted session. A missing or unreadable session
// yields (nil, nil): the user is simply logged out.
func (s *Store) Load() (*Session, error) {
	userRaw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	tokenRaw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		logger.Warn("discarding corrupt session state")
		_ = s.Clear()
		return nil, nil
	}

	token := strings.TrimSpace(string(tokenRaw))
	if token == "" {
		return nil, nil
	}

	return &Session{User: user, Token: token}, nil
}

// Save persists the session, replacing any previous one.
func (s *Store) Save(user models.User, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	userRaw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userRaw, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

// Clear removes the persisted session. Missing files are not an error.
func (s *Store) Clear() error {
	var errs []error
	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
