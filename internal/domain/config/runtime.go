package config

import (
	"time"

	"github.com/samber/lo"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	ArtifactsDir   string
	DeploymentsDir string
	FrontEndFile   string
	FrontEndKey    RegistryKey

	Network           *Network // nil if not specified
	DevelopmentChains []string
	NamedAccounts     map[string]string

	// Environment switches
	EtherscanAPIKey string
	UpdateFrontEnd  bool

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration

	ProjectConfig *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name               string `json:"name"`
	ChainID            uint64 `json:"chainId"`
	RPCURL             string `json:"rpcUrl"`
	ExplorerURL        string `json:"explorerUrl,omitempty"`
	ExplorerAPIURL     string `json:"explorerApiUrl,omitempty"`
	BlockConfirmations uint64 `json:"blockConfirmations"`
}

// IsDevelopment reports whether the active network is a local development chain.
func (c *RuntimeConfig) IsDevelopment() bool {
	if c.Network == nil {
		return false
	}
	return lo.Contains(c.DevelopmentChains, c.Network.Name)
}

// Confirmations returns the number of blocks to wait for after a deployment.
func (c *RuntimeConfig) Confirmations() uint64 {
	if c.Network == nil || c.Network.BlockConfirmations == 0 {
		return 1
	}
	return c.Network.BlockConfirmations
}

// RegistryKey selects which network identifier keys the front-end registry.
type RegistryKey string

const (
	RegistryKeyChainID RegistryKey = "chain_id"
	RegistryKeyName    RegistryKey = "name"
)
