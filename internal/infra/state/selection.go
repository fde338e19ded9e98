package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// selectionKey is the fixed storage name for the tracked player, matching
// the one durable piece of client-side state.
const selectionKey = "squares.selectedPlayer"

// SelectionStore persists the selected player's identity across runs in a
// small JSON state file.
type SelectionStore struct {
	path string
}

func NewSelectionStore(path string) *SelectionStore {
	return &SelectionStore{path: path}
}

// DefaultPath places the state file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "squares-board", "state.json"), nil
}

// Load returns the persisted identity, or "" when nothing is selected.
func (s *SelectionStore) Load() (string, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[selectionKey], nil
}

// Save records identity as the tracked player.
func (s *SelectionStore) Save(identity string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[selectionKey] = identity
	return s.write(values)
}

// Clear forgets the tracked player.
func (s *SelectionStore) Clear() error {
	values, err := s.read()
	if err != nil {
		return err
	}
	delete(values, selectionKey)
	return s.write(values)
}

func (s *SelectionStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return values, nil
}

func (s *SelectionStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
