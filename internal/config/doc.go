// Package config handles loading and validation of git-sift configuration.
//
// Configuration is read from ~/.config/git-sift/config.toml, or from the
// file named by the GIT_SIFT_CONFIG environment variable. A missing file is
// not an error; every setting has a default.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--backend, --local)
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - backend: "git" (shell out to the git CLI) or "go-git" (in-process)
//   - local_only: hide remote-tracking branches from the picker
//
// # Keybinds
//
// The [keys] table maps picker actions to bubbletea key names:
//
//	[keys]
//	next = "tab"
//	next_alternate = "down"
//	prev = "shift+tab"
//	prev_alternate = "up"
//	submit = "enter"
//	quit = "esc"
//	quit_alternate = "ctrl+c"
//	erase = "backspace"
//
// Keys missing from the table keep their defaults. A key may not be bound
// to two different actions.
//
// # Theme
//
// The [theme] table selects a color preset and overrides single colors:
//
//	[theme]
//	name = "nord"
//	mode = "dark"
//	accent = "#ff79c6"
package config
