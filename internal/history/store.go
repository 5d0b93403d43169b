package history

import (
	"encoding/json"
	"os"

	"github.com/Aman-CERP/amanlaunch/internal/atomicfile"
	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
)

// FileName is the history file inside the data directory.
const FileName = "history.json"

// Store persists a Ring as a JSON array of strings, oldest first.
type Store struct {
	Path  string
	Bound int
}

// Load reads the ring from disk. A missing file yields an empty ring. A file
// that cannot be read or decoded yields an empty ring and an ERR_208 error
// for the caller to log. Loaded entries are deduplicated (the later
// occurrence wins) and trimmed to the bound.
func (s Store) Load() (*Ring, error) {
	r := New(s.Bound)

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return r, amerrors.HistoryLoadError(s.Path, err)
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return r, amerrors.HistoryLoadError(s.Path, err)
	}
	for _, e := range entries {
		r.Record(e)
	}
	return r, nil
}

// Save writes the ring atomically.
func (s Store) Save(r *Ring) error {
	entries := r.Entries()
	if entries == nil {
		entries = []string{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return amerrors.HistorySaveError(s.Path, err)
	}
	if err := atomicfile.WriteFile(s.Path, data, 0o644); err != nil {
		return amerrors.HistorySaveError(s.Path, err)
	}
	return nil
}
