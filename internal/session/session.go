// Package session remembers which account the command line is logged in as.
// It only resolves the user name at the command boundary; services receive
// it as an explicit argument.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	User       string    `json:"user"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(user string) error {
	data, err := json.Marshal(Session{User: user, LoggedInAt: time.Now().UTC()})
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

// Current returns the logged-in session or ErrNotLoggedIn.
func (s *FileStore) Current() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return Session{}, errorsUtils.WrapPathErr(err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.User == "" {
		return Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// Clear logs out. Clearing without a session is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}
