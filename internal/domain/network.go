package domain

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
)

// NetworkProfile is one registration of a deployment target. The parameter
// list keeps its declaration order; resolution may reorder a copy of it to
// match the contract constructor.
type NetworkProfile struct {
	Name       string      `json:"name" yaml:"name"`
	ChainID    uint64      `json:"chainId" yaml:"chainId"`
	RPCURL     string      `json:"rpcUrl" yaml:"rpcUrl"`
	ForkURL    string      `json:"forkUrl,omitempty" yaml:"forkUrl,omitempty"`
	Gas        uint64      `json:"gas" yaml:"gas"`
	GasPrice   uint64      `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"` // wei, 0 = ask the node
	SkipDryRun bool        `json:"skipDryRun,omitempty" yaml:"skipDryRun,omitempty"`
	Params     []Parameter `json:"params" yaml:"params"`
	Source     string      `json:"source" yaml:"source"`
}

// Parameter is a named constructor value as declared in a profile.
type Parameter struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Type  string `json:"type" yaml:"type" toml:"type"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// ParamType returns the canonical ABI type of the parameter, defaulting to
// address. The uint shorthand is expanded to uint256.
func (p Parameter) ParamType() string {
	switch p.Type {
	case "":
		return "address"
	case "uint":
		return "uint256"
	}
	return p.Type
}

// Clone returns a deep copy of the profile.
func (p *NetworkProfile) Clone() *NetworkProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Params = append([]Parameter(nil), p.Params...)
	return &c
}

// Param returns the parameter with the given name.
func (p *NetworkProfile) Param(name string) (Parameter, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// Fingerprint identifies the profile content independent of where it was
// declared. The fields are JSON encoded before hashing so that values
// containing separators cannot make two different profiles collide.
func (p *NetworkProfile) Fingerprint() string {
	params := make([]Parameter, len(p.Params))
	for i, param := range p.Params {
		params[i] = Parameter{Name: param.Name, Type: param.ParamType(), Value: param.Value}
	}
	// marshalling plain strings, integers and bools cannot fail
	data, _ := json.Marshal(struct {
		Name       string      `json:"name"`
		ChainID    uint64      `json:"chainId"`
		RPCURL     string      `json:"rpcUrl"`
		ForkURL    string      `json:"forkUrl"`
		Gas        uint64      `json:"gas"`
		GasPrice   uint64      `json:"gasPrice"`
		SkipDryRun bool        `json:"skipDryRun"`
		Params     []Parameter `json:"params"`
	}{p.Name, p.ChainID, p.RPCURL, p.ForkURL, p.Gas, p.GasPrice, p.SkipDryRun, params})
	return crypto.Keccak256Hash(data).Hex()
}

// DiffFields lists the fields on which two registrations of the same network disagree.
func DiffFields(a, b *NetworkProfile) []string {
	var fields []string
	if a.ChainID != b.ChainID {
		fields = append(fields, "chain_id")
	}
	if a.RPCURL != b.RPCURL {
		fields = append(fields, "rpc_url")
	}
	if a.ForkURL != b.ForkURL {
		fields = append(fields, "fork_url")
	}
	if a.Gas != b.Gas {
		fields = append(fields, "gas")
	}
	if a.GasPrice != b.GasPrice {
		fields = append(fields, "gas_price")
	}
	if a.SkipDryRun != b.SkipDryRun {
		fields = append(fields, "skip_dry_run")
	}

	seen := make(map[string]bool)
	for i, param := range a.Params {
		seen[param.Name] = true
		other, ok := b.Param(param.Name)
		if !ok || other.Value != param.Value || other.ParamType() != param.ParamType() {
			fields = append(fields, "params."+param.Name)
			continue
		}
		if i >= len(b.Params) || b.Params[i].Name != param.Name {
			fields = append(fields, "params."+param.Name+" (order)")
		}
	}
	for _, param := range b.Params {
		if !seen[param.Name] {
			fields = append(fields, "params."+param.Name)
		}
	}

	sort.Strings(fields)
	return fields
}

// GasPriceString renders the configured gas price in gwei, or "auto".
func (p *NetworkProfile) GasPriceString() string {
	if p.GasPrice == 0 {
		return "auto"
	}
	if p.GasPrice%1_000_000_000 == 0 {
		return strconv.FormatUint(p.GasPrice/1_000_000_000, 10) + " gwei"
	}
	return strconv.FormatUint(p.GasPrice, 10) + " wei"
}
