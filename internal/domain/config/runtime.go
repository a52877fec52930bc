package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network string // requested network name, empty if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
	DryRun         bool

	// Resolved configurations
	Contract    ContractConfig
	Credentials CredentialsConfig
	Sources     []string // deploy files the profile table was built from
}
