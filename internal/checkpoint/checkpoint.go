// Per-query resume checkpoints. Replaces the hardcoded starting offsets with
// a small state file keyed by query, saved after every page, so resumption is
// an inspectable contract.

package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go-indeed-automation/internal/queries"
)

// State is the resumption position within one query's result set. JobOffset
// advances by the page stride and PagesScraped by one, in lockstep.
type State struct {
	TotalJobs    int `json:"total_jobs"`
	PagesScraped int `json:"pages_scraped"`
	PagesTotal   int `json:"pages_total"`
	JobOffset    int `json:"job_offset"`
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the saved state for query, or a zero state when the query has
// never been scraped.
func (s *Store) Load(query string) (State, error) {
	data, err := os.ReadFile(s.path(query))
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read checkpoint for %q: %w", query, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parse checkpoint for %q: %w", query, err)
	}
	return state, nil
}

func (s *Store) Save(query string, state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint for %q: %w", query, err)
	}
	if err := os.WriteFile(s.path(query), data, 0644); err != nil {
		return fmt.Errorf("write checkpoint for %q: %w", query, err)
	}
	return nil
}

func (s *Store) path(query string) string {
	return filepath.Join(s.dir, queries.Slug(query)+".json")
}
