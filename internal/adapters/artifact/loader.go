package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// compiledArtifact covers both the Truffle and the Foundry artifact layouts.
// Truffle stores bytecode as a hex string, Foundry as {"object": "0x..."}.
type compiledArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// ArtifactLoader reads the compiled contract to learn its constructor signature.
type ArtifactLoader struct {
	projectRoot string
	artifact    string
}

// NewArtifactLoader creates a loader rooted at the project directory
func NewArtifactLoader(cfg *config.RuntimeConfig) *ArtifactLoader {
	return &ArtifactLoader{
		projectRoot: cfg.ProjectRoot,
		artifact:    cfg.Contract.Artifact,
	}
}

// Load finds and parses the artifact for contract. A missing artifact is
// reported as domain.ErrNotFound.
func (l *ArtifactLoader) Load(ctx context.Context, contract string) (*domain.ContractInterface, error) {
	path, err := l.locate(contract)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // project path
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	return ParseArtifact(contract, path, data)
}

// CandidatePaths lists where an artifact for contract is looked for, in order.
func (l *ArtifactLoader) CandidatePaths(contract string) []string {
	if l.artifact != "" {
		if filepath.IsAbs(l.artifact) {
			return []string{l.artifact}
		}
		return []string{filepath.Join(l.projectRoot, l.artifact)}
	}
	return []string{
		filepath.Join(l.projectRoot, "build", "contracts", contract+".json"),
		filepath.Join(l.projectRoot, "out", contract+".sol", contract+".json"),
	}
}

func (l *ArtifactLoader) locate(contract string) (string, error) {
	candidates := l.CandidatePaths(contract)
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("artifact for %s (looked in %s): %w", contract, strings.Join(candidates, ", "), domain.ErrNotFound)
}

// ParseArtifact extracts the constructor inputs and creation bytecode.
func ParseArtifact(contract, path string, data []byte) (*domain.ContractInterface, error) {
	var artifact compiledArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi in %s: %w", path, err)
	}

	bytecode, err := decodeBytecode(artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	iface := &domain.ContractInterface{
		Name:         contract,
		ArtifactPath: path,
		Bytecode:     bytecode,
	}
	for _, input := range parsed.Constructor.Inputs {
		iface.Inputs = append(iface.Inputs, domain.ConstructorInput{
			Name: input.Name,
			Type: input.Type.String(),
		})
	}
	return iface, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unrecognised bytecode field")
		}
		hex = obj.Object
	}

	if hex == "" || hex == "0x" {
		return nil, nil
	}
	if strings.Contains(hex, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if !strings.HasPrefix(hex, "0x") {
		hex = "0x" + hex
	}

	code, err := hexutil.Decode(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}
