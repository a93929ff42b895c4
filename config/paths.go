package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that override the default file locations
const (
	StorePathEnv       = "CCSWITCH_STORE"
	ClaudeConfigDirEnv = "CLAUDE_CONFIG_DIR"
)

// DefaultStorePath returns the profile store location:
// $CCSWITCH_STORE, else $XDG_CONFIG_HOME/ccswitch/profiles.json, else ~/.config/ccswitch/profiles.json
func DefaultStorePath() (string, error) {
	if path := os.Getenv(StorePathEnv); path != "" {
		return path, nil
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(xdgConfigHome, "ccswitch", "profiles.json"), nil
}

// DefaultSettingsPath returns Claude Code's settings file:
// $CLAUDE_CONFIG_DIR/settings.json, else ~/.claude/settings.json
func DefaultSettingsPath() (string, error) {
	if dir := os.Getenv(ClaudeConfigDirEnv); dir != "" {
		return filepath.Join(dir, "settings.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".claude", "settings.json"), nil
}
