package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// isolate points every moscripts location at fresh temp dirs so tests never
// read the developer's config, cache or music folder.
func isolate(t *testing.T) (home string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MOSCRIPTS_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"MOSCRIPTS_TARGET_TZ", "MOSCRIPTS_TIME_FORMAT", "MOSCRIPTS_MOTMP_DIR",
		"MOSCRIPTS_PLAYLISTS_DIR", "MOSCRIPTS_LOG_LEVEL", "MOSCRIPTS_PASSWORD_LENGTH",
	} {
		t.Setenv(key, "")
	}
	return home
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub programs need a POSIX shell")
	}
}

// writeScript writes an executable shell script at path.
func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
}

// recorder returns a script body that appends its arguments, one per line,
// to log and then exits with code.
func recorder(log string, code int) string {
	return `for a in "$@"; do printf '%s\n' "$a" >> '` + log + `'; done
exit ` + strconv.Itoa(code) + "\n"
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
