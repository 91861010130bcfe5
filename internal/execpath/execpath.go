// Package execpath locates the external programs moscripts depends on.
package execpath

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// NotFoundError reports a required executable that is missing or unusable.
type NotFoundError struct {
	Name   string
	Reason string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s", e.Name, e.Reason)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ErrNotFound matches any *NotFoundError with errors.Is.
var ErrNotFound = errors.New("executable not found")

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Which resolves name to an absolute path of an existing, regular,
// executable file. A name containing a path separator is checked directly
// instead of searched on PATH.
func Which(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &NotFoundError{Name: "executable", Reason: "name is empty"}
	}

	found, err := exec.LookPath(name)
	if err != nil && !strings.ContainsRune(name, os.PathSeparator) {
		return "", &NotFoundError{Name: name, Reason: "not found on PATH", Err: err}
	}
	if found == "" {
		found = name
	}

	abs, err := filepath.Abs(found)
	if err != nil {
		return "", &NotFoundError{Name: name, Reason: "could not be resolved", Err: err}
	}
	if err := Verify(abs); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.Name = name
		}
		return "", err
	}
	return abs, nil
}

// Verify checks that path exists, is a regular file and is executable by
// the current user.
func Verify(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Name: path, Reason: "not found", Err: err}
		}
		return &NotFoundError{Name: path, Reason: "could not be inspected", Err: err}
	}
	if !info.Mode().IsRegular() {
		return &NotFoundError{Name: path, Reason: "is not a file"}
	}
	if err := checkExecutable(path, info); err != nil {
		return &NotFoundError{Name: path, Reason: "is not executable", Err: err}
	}
	return nil
}

// NixRunPrefix returns the argv prefix that runs pkg from nixpkgs through
// the nix binary at nix. The program's own arguments follow it.
func NixRunPrefix(nix, pkg string) []string {
	return []string{
		nix,
		"run",
		"--extra-experimental-features",
		"nix-command flakes",
		"nixpkgs#" + pkg,
		"--",
	}
}

// Resolve returns an argv prefix that runs name: the binary on PATH when
// present, else name from nixpkgs via nix. It fails when neither exists.
func Resolve(name string) ([]string, error) {
	if path, err := Which(name); err == nil {
		return []string{path}, nil
	}
	nix, err := Which("nix")
	if err != nil {
		return nil, &NotFoundError{
			Name:   name,
			Reason: "not found on PATH and nix is unavailable to provide it",
			Err:    err,
		}
	}
	return NixRunPrefix(nix, name), nil
}
