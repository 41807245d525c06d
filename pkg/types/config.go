// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProgressMode selects how per-file progress is rendered.
type ProgressMode string

const (
	ProgressAuto ProgressMode = "auto"
	ProgressBar  ProgressMode = "bar"
	ProgressLog  ProgressMode = "log"
	ProgressNone ProgressMode = "none"
)

// ReportFormat selects how the final Result is printed on stdout.
type ReportFormat string

const (
	ReportNone ReportFormat = "none"
	ReportYAML ReportFormat = "yaml"
	ReportJSON ReportFormat = "json"
)

// HelperConfig holds settings for the scripting-bridge driver (macOS).
type HelperConfig struct {
	// Command is the interpreter command line the script is passed to
	// (default "/usr/bin/osascript -l JavaScript").
	Command string `json:"command" yaml:"command"`

	// Script is an optional path to a helper script replacing the built-in one.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`
}

// WordConfig holds settings for the COM driver (Windows).
type WordConfig struct {
	// ProgID is the COM programmatic identifier (default "Word.Application").
	ProgID string `json:"prog_id" yaml:"prog_id"`
}

// Config groups all settings read from flags, environment and config file.
type Config struct {
	// KeepActive leaves the word processor running after the call.
	KeepActive bool `json:"keep_active" yaml:"keep_active"`

	// LogLevel is one of debug, info, warn, error (default info).
	LogLevel string `json:"log_level" yaml:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `json:"log_json" yaml:"log_json"`

	// Progress selects the progress renderer.
	Progress ProgressMode `json:"progress" yaml:"progress"`

	// Report selects the format of the final summary on stdout.
	Report ReportFormat `json:"report" yaml:"report"`

	Helper HelperConfig `json:"helper" yaml:"helper"`
	Word   WordConfig   `json:"word" yaml:"word"`
}

const (
	DefaultHelperCommand = "/usr/bin/osascript -l JavaScript"
	DefaultWordProgID    = "Word.Application"
)
