package domain

// LocalNode is an anvil process serving the localhost development network
type LocalNode struct {
	Host    string `json:"host"`
	Port    string `json:"port"`
	ChainID uint64 `json:"chainId"`
	PidFile string `json:"pidFile"`
	LogFile string `json:"logFile"`
}

// NodeStatus represents the status of a local node
type NodeStatus struct {
	Running     bool   `json:"running"`
	PID         int    `json:"pid,omitempty"`
	RPCURL      string `json:"rpcUrl"`
	LogFile     string `json:"logFile"`
	RPCHealthy  bool   `json:"rpcHealthy"`
	ChainID     uint64 `json:"chainId,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}
