// Package config loads mallboard's TOML configuration.
//
// The file lives at ~/.config/mallboard/config.toml and is optional; a
// missing file yields defaults (local API on 127.0.0.1:8080, background
// refresh disabled, logs under ~/.local/share/mallboard).
package config
