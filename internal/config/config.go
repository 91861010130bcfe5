package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the contents of config.toml after defaults and overrides.
type Config struct {
	LogLevel  string    `toml:"log_level"`
	Prompt    Prompt    `toml:"prompt"`
	Timestamp Timestamp `toml:"timestamp"`
	Motmp     Motmp     `toml:"motmp"`
	Playlists Playlists `toml:"playlists"`
	Password  Password  `toml:"password"`
}

// Prompt selects the interactive prompt backend: "auto", "gum" or "fuzzy".
type Prompt struct {
	Backend string `toml:"backend"`
}

// Timestamp holds defaults for the timestamp command.
type Timestamp struct {
	TargetTZ string `toml:"target_tz"`
	Format   string `toml:"format"`
}

// Motmp holds the scratch-notebook locations and bootstrap packages.
type Motmp struct {
	Dir      string   `toml:"dir"`
	Venv     string   `toml:"venv"`
	Packages []string `toml:"packages"`
}

// Playlists holds the playlist directory and default player flags.
type Playlists struct {
	Dir     string `toml:"dir"`
	Shuffle bool   `toml:"shuffle"`
	Loop    bool   `toml:"loop"`
}

// Password holds password generator defaults.
type Password struct {
	Length int `toml:"length"`
}

// Environment variables that override config.toml.
const (
	EnvTargetTZ     = "MOSCRIPTS_TARGET_TZ"
	EnvTimeFormat   = "MOSCRIPTS_TIME_FORMAT"
	EnvMotmpDir     = "MOSCRIPTS_MOTMP_DIR"
	EnvPlaylistsDir = "MOSCRIPTS_PLAYLISTS_DIR"
	EnvLogLevel     = "MOSCRIPTS_LOG_LEVEL"
	EnvPasswordLen  = "MOSCRIPTS_PASSWORD_LENGTH"
)

// DefaultPath returns the config.toml location inside Dir.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads the TOML file at path over Default, applies environment
// overrides, expands paths and validates the result. An empty path means
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file).DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", expanded, strict.String())
		}
		return fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvTargetTZ)); v != "" {
		c.Timestamp.TargetTZ = v
	}
	if v := os.Getenv(EnvTimeFormat); v != "" {
		c.Timestamp.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMotmpDir)); v != "" {
		c.Motmp.Dir = v
		c.Motmp.Venv = ""
	}
	if v := strings.TrimSpace(os.Getenv(EnvPlaylistsDir)); v != "" {
		c.Playlists.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPasswordLen)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvPasswordLen, v)
		}
		c.Password.Length = n
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Motmp.Dir) == "" {
		c.Motmp.Dir = defaultMotmpDir()
	}
	if c.Motmp.Dir, err = ExpandPath(c.Motmp.Dir); err != nil {
		return fmt.Errorf("motmp.dir: %w", err)
	}
	if strings.TrimSpace(c.Motmp.Venv) == "" {
		c.Motmp.Venv = filepath.Join(c.Motmp.Dir, defaultVenvName)
	}
	if c.Motmp.Venv, err = ExpandPath(c.Motmp.Venv); err != nil {
		return fmt.Errorf("motmp.venv: %w", err)
	}
	if c.Playlists.Dir, err = ExpandPath(c.Playlists.Dir); err != nil {
		return fmt.Errorf("playlists.dir: %w", err)
	}
	c.Prompt.Backend = strings.ToLower(strings.TrimSpace(c.Prompt.Backend))
	if c.Prompt.Backend == "" {
		c.Prompt.Backend = defaultPromptBackend
	}
	return nil
}

// Validate reports settings that would make every command fail.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Timestamp.TargetTZ) == "" {
		problems = append(problems, "timestamp.target_tz must not be empty")
	}
	if c.Timestamp.Format == "" {
		problems = append(problems, "timestamp.format must not be empty")
	}
	if c.Motmp.Dir == "" {
		problems = append(problems, "motmp.dir must not be empty")
	}
	if len(c.Motmp.Packages) == 0 {
		problems = append(problems, "motmp.packages must list at least one package")
	}
	if c.Playlists.Dir == "" {
		problems = append(problems, "playlists.dir must not be empty")
	}
	if c.Password.Length <= 0 {
		problems = append(problems, "password.length must be positive")
	}
	switch c.Prompt.Backend {
	case "auto", "gum", "fuzzy":
	default:
		problems = append(problems, fmt.Sprintf("prompt.backend %q must be auto, gum or fuzzy", c.Prompt.Backend))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
