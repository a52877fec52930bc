package config

import (
	"regexp"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// envRefPattern matches ${VAR_NAME} references inside config values
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ReferencedEnvVars lists the variable names referenced by raw, in order of
// first appearance.
func ReferencedEnvVars(raw string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range envRefPattern.FindAllStringSubmatch(raw, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// ExpandEnvRefs substitutes every ${VAR} in raw. An unset or empty variable
// fails with MissingCredentialError rather than producing a broken URL.
func ExpandEnvRefs(raw string, lookup func(string) (string, bool)) (string, error) {
	for _, name := range ReferencedEnvVars(raw) {
		if v, ok := lookup(name); !ok || v == "" {
			return "", &domain.MissingCredentialError{Variable: name, Purpose: "referenced by " + raw}
		}
	}
	return envRefPattern.ReplaceAllStringFunc(raw, func(ref string) string {
		v, _ := lookup(envRefPattern.FindStringSubmatch(ref)[1])
		return v
	}), nil
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, celo-sepolia -> CELO_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// minRedactLength is the shortest secret RedactSecrets will mask. Shorter
// values match too much unrelated text to be replaced blindly.
const minRedactLength = 8

// RedactSecrets replaces every occurrence of each secret in s. Secrets shorter
// than minRedactLength are left alone.
func RedactSecrets(s string, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) >= minRedactLength {
			s = strings.ReplaceAll(s, secret, "***")
		}
	}
	return s
}
