// Package motmp manages disposable marimo notebooks ("MOTMP" files) and
// the virtual environment used to edit them.
package motmp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionDir is where marimo keeps session sidecars, relative to the
// notebook directory.
const SessionDir = "__marimo__/session"

// Notebook is a scratch notebook and its optional session sidecar.
type Notebook struct {
	Path    string    `json:"path"`
	Session string    `json:"session,omitempty"`
	Created time.Time `json:"created"`
}

// Name is the notebook's file name.
func (n Notebook) Name() string {
	return filepath.Base(n.Path)
}

// Order selects how Scan sorts notebooks.
type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// IsNotebookName reports whether name follows the MOTMP naming convention.
func IsNotebookName(name string) bool {
	return strings.Contains(name, "motmp") && strings.HasSuffix(name, ".py")
}

// Scan lists the notebooks in dir sorted by creation time. Ties are
// broken by name so the order is stable.
func Scan(dir string, order Order) ([]Notebook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sessions := filepath.Join(dir, filepath.FromSlash(SessionDir))
	notebooks := make([]Notebook, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsNotebookName(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}

		nb := Notebook{Path: path, Created: createdAt(path, info)}
		session := filepath.Join(sessions, entry.Name()+".json")
		if _, err := os.Stat(session); err == nil {
			nb.Session = session
		}
		notebooks = append(notebooks, nb)
	}

	Sort(notebooks, order)
	return notebooks, nil
}

// Sort orders notebooks by creation time, then by path.
func Sort(notebooks []Notebook, order Order) {
	slices.SortFunc(notebooks, func(a, b Notebook) int {
		c := a.Created.Compare(b.Created)
		if order == NewestFirst {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}

// Wipe removes each notebook and its session. A failure on one file is
// logged and does not stop the rest; files that are already gone are not
// failures. The returned error joins every failure.
func Wipe(notebooks []Notebook, log zerolog.Logger) (removed int, err error) {
	var errs []error
	remove := func(path string) bool {
		rmErr := os.Remove(path)
		if rmErr == nil {
			return true
		}
		if errors.Is(rmErr, fs.ErrNotExist) {
			return false
		}
		log.Warn().Err(rmErr).Str("path", path).Msg("failed to wipe")
		errs = append(errs, rmErr)
		return false
	}

	for _, nb := range notebooks {
		if remove(nb.Path) {
			removed++
		}
		if nb.Session != "" {
			remove(nb.Session)
		}
	}
	return removed, errors.Join(errs...)
}

// NewName returns a fresh notebook file name like motmp_<uuid>.py with the
// uuid's dashes replaced by underscores.
func NewName() string {
	return "motmp_" + strings.ReplaceAll(uuid.NewString(), "-", "_") + ".py"
}

// Create makes an empty notebook in dir with mode 0644.
func Create(dir string) (string, error) {
	path := filepath.Join(dir, NewName())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create notebook: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("create notebook: %w", err)
	}
	return path, nil
}
