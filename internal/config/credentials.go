package config

import (
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/crypto"
)

// Credentials is a snapshot of the secret environment taken at startup. Its
// String and LogValue never include the secret values.
type Credentials struct {
	names  config.CredentialsConfig
	values map[string]string
}

// NewCredentials captures the two configured variables through lookup.
func NewCredentials(names config.CredentialsConfig, lookup func(string) (string, bool)) *Credentials {
	c := &Credentials{names: names, values: make(map[string]string)}
	for _, name := range []string{names.RPCAPIKeyEnv, names.SignerKeyEnv} {
		if v, ok := lookup(name); ok {
			c.values[name] = v
		}
	}
	return c
}

// ProvideCredentials snapshots the process environment for Wire.
func ProvideCredentials(cfg *config.RuntimeConfig) *Credentials {
	return NewCredentials(cfg.Credentials, os.LookupEnv)
}

// RPCAPIKey returns the RPC provider key or MissingCredentialError.
func (c *Credentials) RPCAPIKey() (string, error) {
	v := c.values[c.names.RPCAPIKeyEnv]
	if v == "" {
		return "", &domain.MissingCredentialError{Variable: c.names.RPCAPIKeyEnv, Purpose: "RPC provider API key"}
	}
	return v, nil
}

// Signer parses the signing account private key.
func (c *Credentials) Signer() (*ecdsa.PrivateKey, error) {
	v := strings.TrimSpace(c.values[c.names.SignerKeyEnv])
	if v == "" {
		return nil, &domain.MissingCredentialError{Variable: c.names.SignerKeyEnv, Purpose: "deployer private key"}
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(v, "0x"))
	if err != nil {
		// the value itself must not end up in the error
		return nil, &domain.InvalidParameterError{Field: c.names.SignerKeyEnv, Reason: "not a valid secp256k1 private key"}
	}
	return key, nil
}

// ExpandURL resolves ${VAR} references against the snapshot, falling back to
// the live environment for variables other than the configured credentials.
func (c *Credentials) ExpandURL(raw string) (string, error) {
	return ExpandEnvRefs(raw, c.lookup)
}

// Redact hides every captured secret value in s.
func (c *Credentials) Redact(s string) string {
	secrets := make([]string, 0, len(c.values))
	for _, v := range c.values {
		secrets = append(secrets, v)
	}
	return RedactSecrets(s, secrets...)
}

func (c *Credentials) lookup(name string) (string, bool) {
	if v, ok := c.values[name]; ok {
		return v, true
	}
	return os.LookupEnv(name)
}

func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{%s=%s, %s=%s}",
		c.names.RPCAPIKeyEnv, presence(c.values[c.names.RPCAPIKeyEnv]),
		c.names.SignerKeyEnv, presence(c.values[c.names.SignerKeyEnv]))
}

// LogValue implements slog.LogValuer.
func (c *Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(c.names.RPCAPIKeyEnv, presence(c.values[c.names.RPCAPIKeyEnv])),
		slog.String(c.names.SignerKeyEnv, presence(c.values[c.names.SignerKeyEnv])),
	)
}

func presence(v string) string {
	if v == "" {
		return "unset"
	}
	return "set"
}
