package motmp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrewthomaslee/moscripts/internal/execpath"
)

// VenvDirName is the environment directory created inside the MOTMP dir.
const VenvDirName = ".venv"

// Env is a Python virtual environment with marimo installed.
type Env struct {
	Dir string
}

// Python returns the interpreter path.
func (e Env) Python() string { return filepath.Join(e.Dir, "bin", "python") }

// Marimo returns the marimo executable path.
func (e Env) Marimo() string { return filepath.Join(e.Dir, "bin", "marimo") }

// Exists reports whether the environment directory is present.
func (e Env) Exists() bool {
	info, err := os.Stat(e.Dir)
	return err == nil && info.IsDir()
}

// Validate checks that the interpreter and marimo are present and
// executable.
func (e Env) Validate() error {
	if !e.Exists() {
		return fmt.Errorf("virtual environment not found at %s", e.Dir)
	}
	var errs []error
	for _, path := range []string{e.Python(), e.Marimo()} {
		if err := execpath.Verify(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
