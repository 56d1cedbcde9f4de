// Package learner implements the tabular Q-learning opponent: a value table
// keyed by (encoded state, action), a greedy policy reading it, and a
// self-play trainer updating it.
package learner

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"nmoku/game"
)

// tableKey pairs an encoded state with a candidate action.
type tableKey struct {
	state  game.StateKey
	action game.Action
}

// Table maps (encoded state, action) pairs to estimated values, defaulting
// to 0 for unseen keys. A table is exclusively owned by its trainer while
// training and read-only during play; it is not safe for concurrent use.
type Table struct {
	size      int
	runLength int
	values    map[tableKey]float64
}

// NewTable returns an empty value table for boards of the given size and
// run length.
func NewTable(size, runLength int) *Table {
	return &Table{
		size:      size,
		runLength: runLength,
		values:    make(map[tableKey]float64),
	}
}

func (t *Table) Size() int      { return t.size }
func (t *Table) RunLength() int { return t.runLength }

// Len returns the number of (state, action) pairs with a stored value.
func (t *Table) Len() int {
	return len(t.values)
}

// Value returns the estimated value of taking action from state, or 0 if
// the pair has never been updated.
func (t *Table) Value(state game.StateKey, action game.Action) float64 {
	return t.values[tableKey{state: state, action: action}]
}

// update moves the stored value toward target by the learning rate alpha:
// Q(s,a) <- Q(s,a) + alpha*(target - Q(s,a)).
func (t *Table) update(state game.StateKey, action game.Action, target, alpha float64) {
	key := tableKey{state: state, action: action}
	current := t.values[key]
	t.values[key] = current + alpha*(target-current)
}

// Filename derives the on-disk identifier for a table trained under the
// given configuration, so tables trained under different configurations
// never collide or get silently reused.
func Filename(size, runLength, episodes int) string {
	return fmt.Sprintf("q_table_%d_%d_%d.gob", size, runLength, episodes)
}

// tableSnapshot is the gob-encoded persistence format.
type tableSnapshot struct {
	Size      int
	RunLength int
	Entries   []tableEntry
}

type tableEntry struct {
	State  uint64
	Action int
	Value  float64
}

// Save serializes the table to path, creating parent directories as needed.
// A failure leaves the in-memory table untouched.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create table directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file %s: %w", path, err)
	}
	defer file.Close()

	snapshot := tableSnapshot{
		Size:      t.size,
		RunLength: t.runLength,
		Entries:   make([]tableEntry, 0, len(t.values)),
	}
	for key, value := range t.values {
		snapshot.Entries = append(snapshot.Entries, tableEntry{
			State:  uint64(key.state),
			Action: int(key.action),
			Value:  value,
		})
	}

	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		return fmt.Errorf("failed to encode table %s: %w", path, err)
	}
	return nil
}

// Load replaces the table contents with a snapshot previously written by
// Save. It reports whether a table was found and installed: a missing file
// is not an error and leaves the table empty. A snapshot written for a
// different board configuration is rejected.
func (t *Table) Load(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open table file %s: %w", path, err)
	}
	defer file.Close()

	var snapshot tableSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		return false, fmt.Errorf("failed to decode table %s: %w", path, err)
	}
	if snapshot.Size != t.size || snapshot.RunLength != t.runLength {
		return false, fmt.Errorf("table snapshot (%d/%d) does not match configuration (%d/%d)",
			snapshot.Size, snapshot.RunLength, t.size, t.runLength)
	}

	values := make(map[tableKey]float64, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		key := tableKey{state: game.StateKey(entry.State), action: game.Action(entry.Action)}
		values[key] = entry.Value
	}
	t.values = values
	return true, nil
}
