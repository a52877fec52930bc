package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for resolver and deploy operations
var (
	// ErrUnknownNetwork is returned when a network name matches no profile
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidParameter is returned when a required parameter is empty or malformed
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConfigurationConflict is returned when two profiles disagree for the same network
	ErrConfigurationConflict = errors.New("configuration conflict")

	// ErrMissingCredential is returned when a required environment credential is absent
	ErrMissingCredential = errors.New("missing credential")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrChainMismatch is returned when an RPC endpoint serves a different chain than configured
	ErrChainMismatch = errors.New("chain ID mismatch")
)

// UnknownNetworkError reports a network name that is not in the profile table.
type UnknownNetworkError struct {
	Name       string
	Known      []string
	Suggestion string
}

func (e *UnknownNetworkError) Error() string {
	msg := fmt.Sprintf("unknown network %q", e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	if len(e.Known) > 0 {
		known := append([]string(nil), e.Known...)
		sort.Strings(known)
		msg += fmt.Sprintf("; known networks: %s", strings.Join(known, ", "))
	}
	return msg
}

func (e *UnknownNetworkError) Is(target error) bool {
	return target == ErrUnknownNetwork
}

// InvalidParameterError reports the offending field of a network profile.
type InvalidParameterError struct {
	Network string
	Field   string
	Value   string
	Reason  string
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid parameter %q for network %q: %s", e.Field, e.Network, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q for network %q: %s (got %q)", e.Field, e.Network, e.Reason, e.Value)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// ConfigurationConflictError reports two or more divergent registrations of one network.
type ConfigurationConflictError struct {
	Network string
	Sources []string
	Fields  []string
}

func (e *ConfigurationConflictError) Error() string {
	msg := fmt.Sprintf("conflicting profiles for network %q in %s", e.Network, strings.Join(e.Sources, ", "))
	if len(e.Fields) > 0 {
		msg += fmt.Sprintf(" (differing: %s)", strings.Join(e.Fields, ", "))
	}
	return msg
}

func (e *ConfigurationConflictError) Is(target error) bool {
	return target == ErrConfigurationConflict
}

// MissingCredentialError names the environment variable that was not set.
type MissingCredentialError struct {
	Variable string
	Purpose  string
}

func (e *MissingCredentialError) Error() string {
	if e.Purpose == "" {
		return fmt.Sprintf("missing credential: environment variable %s is not set", e.Variable)
	}
	return fmt.Sprintf("missing credential: environment variable %s (%s) is not set", e.Variable, e.Purpose)
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// Exit codes reported by the CLI for each error kind
const (
	ExitGeneric               = 1
	ExitUnknownNetwork        = 2
	ExitInvalidParameter      = 3
	ExitConfigurationConflict = 4
	ExitMissingCredential     = 5
)

// ExitCode maps an error to the process exit code. A nil error maps to 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnknownNetwork):
		return ExitUnknownNetwork
	case errors.Is(err, ErrInvalidParameter):
		return ExitInvalidParameter
	case errors.Is(err, ErrConfigurationConflict):
		return ExitConfigurationConflict
	case errors.Is(err, ErrMissingCredential):
		return ExitMissingCredential
	default:
		return ExitGeneric
	}
}

// ErrorKind returns the short kind name printed alongside a failure.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownNetwork):
		return "UnknownNetworkError"
	case errors.Is(err, ErrInvalidParameter):
		return "InvalidParameterError"
	case errors.Is(err, ErrConfigurationConflict):
		return "ConfigurationConflictError"
	case errors.Is(err, ErrMissingCredential):
		return "MissingCredentialError"
	default:
		return "Error"
	}
}
