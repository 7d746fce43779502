package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Store persists the cart's item list between sessions. It is the sole
// durability mechanism for the cart; there is no server-side copy.
type Store interface {
	// Load returns the persisted items. No persisted data is (nil, nil).
	Load() ([]Item, error)
	Save(items []Item) error
}

// FileStore keeps the cart as a JSON file, the session-local equivalent of
// the browser's local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore persisting to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted item list. A missing file or unparseable
// content yields an empty cart; only real I/O failures surface as errors.
func (s *FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		// Malformed stored data is discarded silently.
		return nil, nil
	}
	return items, nil
}

// Save writes the item list as JSON, replacing whatever was stored.
func (s *FileStore) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
