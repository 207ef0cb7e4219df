package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Backend names accepted by the backend setting.
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GIT_SIFT_CONFIG"

// KeysConfig holds the picker keybinds.
// Values use bubbletea key names such as "tab", "shift+tab" or "ctrl+c".
type KeysConfig struct {
	Next          string `toml:"next" json:"next"`
	NextAlternate string `toml:"next_alternate" json:"next_alternate"`
	Prev          string `toml:"prev" json:"prev"`
	PrevAlternate string `toml:"prev_alternate" json:"prev_alternate"`
	Submit        string `toml:"submit" json:"submit"`
	Quit          string `toml:"quit" json:"quit"`
	QuitAlternate string `toml:"quit_alternate" json:"quit_alternate"`
	Erase         string `toml:"erase" json:"erase"`
}

// ThemeConfig holds UI color settings
type ThemeConfig struct {
	Name    string `toml:"name" json:"name"` // preset family: "default", "dracula", "nord", "gruvbox", "none"
	Mode    string `toml:"mode" json:"mode"` // "auto", "light" or "dark"
	Primary string `toml:"primary" json:"primary"`
	Accent  string `toml:"accent" json:"accent"`
	Success string `toml:"success" json:"success"`
	Error   string `toml:"error" json:"error"`
	Muted   string `toml:"muted" json:"muted"`
	Normal  string `toml:"normal" json:"normal"`
	Info    string `toml:"info" json:"info"`
	Warning string `toml:"warning" json:"warning"`
}

// Config holds the git-sift configuration
type Config struct {
	Backend   string      `toml:"backend" json:"backend"`       // "git" or "go-git"
	LocalOnly bool        `toml:"local_only" json:"local_only"` // hide remote-tracking branches
	Keys      KeysConfig  `toml:"keys" json:"keys"`
	Theme     ThemeConfig `toml:"theme" json:"theme"`
}

// DefaultKeys returns the keybinds used when none are configured.
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Next:          "tab",
		NextAlternate: "down",
		Prev:          "shift+tab",
		PrevAlternate: "up",
		Submit:        "enter",
		Quit:          "esc",
		QuitAlternate: "ctrl+c",
		Erase:         "backspace",
	}
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Backend: BackendGit,
		Keys:    DefaultKeys(),
	}
}

// Path returns the path to the config file.
// GIT_SIFT_CONFIG takes precedence over ~/.config/git-sift/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-sift", "config.toml"), nil
}

// Load reads config from the path returned by Path.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. Settings missing from the file keep
// their default values.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

const defaultConfig = `# git-sift configuration

# Backend used to read branches and check them out:
#   "git"    - the git CLI found in PATH (default)
#   "go-git" - built-in implementation, no git binary required
backend = "git"

# Only list local branches (same as --local)
# local_only = false

# Keybinds use bubbletea key names: "tab", "shift+tab", "up", "down",
# "enter", "esc", "backspace", "ctrl+<letter>", "alt+<letter>", ...
# Every key may be bound to one action only.
[keys]
next = "tab"
next_alternate = "down"
prev = "shift+tab"
prev_alternate = "up"
submit = "enter"
quit = "esc"
quit_alternate = "ctrl+c"
erase = "backspace"

# Colors
# name: "default", "dracula", "nord", "gruvbox" or "none"
# mode: "auto" (detect terminal background), "light" or "dark"
# Individual colors override the preset, e.g. accent = "#ff79c6"
[theme]
# name = "default"
# mode = "auto"
`

// DefaultConfig returns the commented default config file.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
