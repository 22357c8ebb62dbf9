// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Backend identifies the conversion backend.
type Backend string

const (
	// BackendNative converts documents with pure-Go parsers.
	BackendNative Backend = "native"
	// BackendMarkitdown pipes documents through the markitdown container image.
	BackendMarkitdown Backend = "markitdown"
	// BackendRemote posts documents to a conversion HTTP service.
	BackendRemote Backend = "remote"
)

// RemoteConfig holds settings for the remote conversion backend.
type RemoteConfig struct {
	// URL is the conversion service endpoint.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// APIKey authenticates requests as a bearer token. Usually loaded from
	// the .secrets/ directory rather than the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Timeout is the HTTP request timeout (default 2m; conversions are slow).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "docparse/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Backend selects the converter: native, markitdown, or remote.
	Backend Backend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the container image used by the markitdown backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Runtime forces a container runtime ("docker" or "podman"). Empty means
	// auto-detect, docker first.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty" mapstructure:"runtime"`

	// Remote configures the remote backend.
	Remote RemoteConfig `json:"remote" yaml:"remote" mapstructure:"remote"`
}

// HistoryConfig holds settings for the invocation history store.
type HistoryConfig struct {
	// Enabled records every parse invocation when true (same as --record).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database location. Empty means ~/.docparse/history.db.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Config groups all docparse configuration.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
