// Package config handles loading and parsing the funnel configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/funnel/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	api_bind = "127.0.0.1:8274"
//	prefs_path = "~/.local/share/funnel/prefs.db"
//
// APIBind is the host:port of the lead data endpoint; PrefsPath overrides the
// preferences database location (empty uses the prefs package default).
package config
