package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "moscripts") {
		t.Errorf("--version output should contain 'moscripts': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{
		"moscripts", "Usage:", "--json", "--color", "--verbose", "--config",
		"timestamp", "tz", "motmp", "playlist", "password", "doctor",
		"Time Commands:", "Launch Commands:", "Utility Commands:",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q", expected)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	out, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", out)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", out)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"json", "color", "verbose", "config"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
}

func TestRootCommand_Aliases(t *testing.T) {
	cmd := newRootCmd()
	for alias, want := range map[string]string{"ts": "timestamp", "mpv": "playlist", "pw": "password"} {
		found, _, err := cmd.Find([]string{alias})
		if err != nil {
			t.Fatalf("Find(%q) error = %v", alias, err)
		}
		if found.Name() != want {
			t.Errorf("alias %q resolves to %q, want %q", alias, found.Name(), want)
		}
	}
}

func TestRootCommand_BadConfig(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[timestamp]\nunknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "password", "--cli")
	if err == nil {
		t.Fatal("unknown config keys should be rejected")
	}
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
	}
}

func TestRootCommand_EnvFile(t *testing.T) {
	home := isolate(t)
	envPath := filepath.Join(home, "config", "env")
	if err := os.MkdirAll(filepath.Dir(envPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("MOSCRIPTS_PASSWORD_LENGTH=12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MOSCRIPTS_PASSWORD_LENGTH") })

	out, errOut, err := execute(t, "password", "--cli", "--verbose")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := len(strings.TrimSpace(out)); got != 12 {
		t.Errorf("password length = %d, want 12 from env file", got)
	}
	if !strings.Contains(errOut, "env file set: MOSCRIPTS_PASSWORD_LENGTH") {
		t.Errorf("--verbose should report applied env file keys on stderr, got %q", errOut)
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit, date = "1.0.0", "abcdef123456", "2026-01-02"
	t.Cleanup(func() { version, commit, date = "dev", "none", "unknown" })

	if got, want := buildVersion(), "1.0.0 (abcdef1, 2026-01-02)"; got != want {
		t.Errorf("buildVersion() = %q, want %q", got, want)
	}
}

// runRootCaptured runs args through the fang entry point with captured
// stdout and stderr.
func runRootCaptured(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	code = runRoot(context.Background(), root)
	return code, out.String(), errOut.String()
}

func TestRunRoot_InvalidZoneReportsOnStderr(t *testing.T) {
	isolate(t)

	code, stdout, stderr := runRootCaptured(t, "timestamp", "-t", "Not/AZone")

	if code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if want := `Error: invalid timezone: "Not/AZone"`; !strings.Contains(stderr, want) {
		t.Errorf("stderr = %q, want it to contain %q", stderr, want)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty, got %q", stdout)
	}
}

func TestRunRoot_JSONErrorsStayOffStderr(t *testing.T) {
	isolate(t)

	code, stdout, stderr := runRootCaptured(t, "timestamp", "-t", "Not/AZone", "--json")

	if code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if stderr != "" {
		t.Errorf("stderr should be empty in JSON mode, got %q", stderr)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("stdout should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if msg, _ := result["error"].(string); !strings.Contains(msg, "invalid timezone") {
		t.Errorf("error = %v", result["error"])
	}
}

func TestRunRoot_Success(t *testing.T) {
	isolate(t)

	code, stdout, stderr := runRootCaptured(t, "password", "--cli", "--length", "10")

	if code != output.ExitSuccess {
		t.Errorf("exit code = %d, want %d (stderr %q)", code, output.ExitSuccess, stderr)
	}
	if got := len(strings.TrimSpace(stdout)); got != 10 {
		t.Errorf("password length = %d, want 10", got)
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		jsonMode bool
		err      error
		want     string
	}{
		{name: "user error", err: output.NewUserError("no playlists found"), want: "Error: no playlists found\n"},
		{name: "json mode", jsonMode: true, err: output.NewUserError("no playlists found")},
		{name: "child exit", err: output.NewChildExitError("mpv", 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.jsonMode, tt.err)
			if buf.String() != tt.want {
				t.Errorf("printError() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
