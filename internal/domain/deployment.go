package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Argument is one resolved constructor argument.
type Argument struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// DeploymentSpec is the ordered, validated constructor argument list for one
// network. It is built by the resolver and is not modified afterwards.
type DeploymentSpec struct {
	network      string
	chainID      uint64
	contract     string
	args         []Argument
	encoded      []byte
	fingerprint  common.Hash
	arityChecked bool
}

// NewDeploymentSpec copies args and encoded so later changes by the caller do
// not leak into the DeploymentSpec.
func NewDeploymentSpec(network string, chainID uint64, contract string, args []Argument, encoded []byte, arityChecked bool) *DeploymentSpec {
	spec := &DeploymentSpec{
		network:      network,
		chainID:      chainID,
		contract:     contract,
		args:         append([]Argument(nil), args...),
		encoded:      append([]byte(nil), encoded...),
		arityChecked: arityChecked,
	}
	spec.fingerprint = crypto.Keccak256Hash([]byte(contract), []byte{0}, spec.encoded)
	return spec
}

func (s *DeploymentSpec) Network() string { return s.network }
func (s *DeploymentSpec) ChainID() uint64 { return s.chainID }
func (s *DeploymentSpec) Contract() string { return s.contract }
func (s *DeploymentSpec) Len() int { return len(s.args) }
func (s *DeploymentSpec) ArityChecked() bool { return s.arityChecked }

// Fingerprint is keccak256(contract || 0x00 || encoded constructor args).
func (s *DeploymentSpec) Fingerprint() common.Hash { return s.fingerprint }

// Args returns a copy of the ordered arguments.
func (s *DeploymentSpec) Args() []Argument {
	return append([]Argument(nil), s.args...)
}

// EncodedArgs returns a copy of the ABI encoded constructor arguments.
func (s *DeploymentSpec) EncodedArgs() []byte {
	return append([]byte(nil), s.encoded...)
}

// View returns a serializable snapshot of the DeploymentSpec.
func (s *DeploymentSpec) View() DeploymentSpecView {
	return DeploymentSpecView{
		Network:      s.network,
		ChainID:      s.chainID,
		Contract:     s.contract,
		Args:         s.Args(),
		EncodedArgs:  hexutil.Encode(s.encoded),
		Fingerprint:  s.fingerprint.Hex(),
		ArityChecked: s.arityChecked,
	}
}

// DeploymentSpecView is the rendered form of a DeploymentSpec.
type DeploymentSpecView struct {
	Network      string     `json:"network" yaml:"network"`
	ChainID      uint64     `json:"chainId" yaml:"chainId"`
	Contract     string     `json:"contract" yaml:"contract"`
	Args         []Argument `json:"args" yaml:"args"`
	EncodedArgs  string     `json:"encodedArgs" yaml:"encodedArgs"`
	Fingerprint  string     `json:"fingerprint" yaml:"fingerprint"`
	ArityChecked bool       `json:"arityChecked" yaml:"arityChecked"`
}

// ConstructorInput is one declared constructor parameter of a compiled contract.
type ConstructorInput struct {
	Name string
	Type string
}

// ContractInterface is what the artifact loader knows about the deployed contract.
type ContractInterface struct {
	Name         string
	ArtifactPath string
	Inputs       []ConstructorInput
	Bytecode     []byte
}

// Arity is the number of declared constructor parameters.
func (c *ContractInterface) Arity() int {
	return len(c.Inputs)
}

// NamedInputs reports whether every constructor input carries a name.
func (c *ContractInterface) NamedInputs() bool {
	if len(c.Inputs) == 0 {
		return false
	}
	for _, in := range c.Inputs {
		if in.Name == "" {
			return false
		}
	}
	return true
}

// DeploymentReceipt summarises the mined (or estimated) deployment transaction.
type DeploymentReceipt struct {
	TxHash          common.Hash    `json:"txHash"`
	ContractAddress common.Address `json:"contractAddress"`
	BlockNumber     uint64         `json:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed"`
	GasEstimate     uint64         `json:"gasEstimate"`
	From            common.Address `json:"from"`
	DryRun          bool           `json:"dryRun"`
}

// DeploymentRecord is persisted after a successful broadcast.
type DeploymentRecord struct {
	Network     string    `json:"network"`
	ChainID     uint64    `json:"chainId"`
	Contract    string    `json:"contract"`
	Address     string    `json:"address"`
	TxHash      string    `json:"txHash"`
	BlockNumber uint64    `json:"blockNumber"`
	GasUsed     uint64    `json:"gasUsed"`
	Deployer    string    `json:"deployer"`
	Fingerprint string    `json:"fingerprint"`
	DeployedAt  time.Time `json:"deployedAt"`
}

// DeploymentFilter narrows record listings.
type DeploymentFilter struct {
	Network  string
	Contract string
}
