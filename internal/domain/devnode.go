package domain

// DevNodeInstance describes a local anvil fork used by the develop network.
type DevNodeInstance struct {
	Name    string `json:"name"`
	Port    string `json:"port"`
	ChainID uint64 `json:"chainId,omitempty"`
	ForkURL string `json:"-"` // may embed the RPC API key
	PidFile string `json:"pidFile"`
	LogFile string `json:"logFile"`
}

// RPCURL is the local endpoint the node listens on.
func (i *DevNodeInstance) RPCURL() string {
	return "http://127.0.0.1:" + i.Port
}

// DevNodeStatus is the observed state of a dev node.
type DevNodeStatus struct {
	Running     bool   `json:"running"`
	PID         int    `json:"pid,omitempty"`
	RPCURL      string `json:"rpcUrl,omitempty"`
	LogFile     string `json:"logFile"`
	RPCHealthy  bool   `json:"rpcHealthy"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	ChainID     uint64 `json:"chainId,omitempty"`
	Error       string `json:"error,omitempty"`
}
