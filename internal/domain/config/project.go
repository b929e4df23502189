package config

// ProjectConfig is the decoded nftm.toml project file.
type ProjectConfig struct {
	Paths             PathsConfig              `toml:"paths"`
	FrontEnd          FrontEndConfig           `toml:"frontend"`
	NamedAccounts     map[string]string        `toml:"named_accounts"`
	Networks          map[string]NetworkConfig `toml:"networks"`
	DevelopmentChains []string                 `toml:"development_chains"`
}

// PathsConfig locates build outputs relative to the project root
type PathsConfig struct {
	Artifacts   string `toml:"artifacts"`
	Deployments string `toml:"deployments"`
}

// FrontEndConfig locates the front-end address registry
type FrontEndConfig struct {
	NetworkMapping string `toml:"network_mapping"`
	Key            string `toml:"key"`
}

// NetworkConfig is a [networks.<name>] table
type NetworkConfig struct {
	RPCURL             string         `toml:"rpc_url"`
	ChainID            uint64         `toml:"chain_id"`
	BlockConfirmations uint64         `toml:"block_confirmations"`
	Explorer           ExplorerConfig `toml:"explorer"`
}

// ExplorerConfig points at an Etherscan-compatible explorer
type ExplorerConfig struct {
	URL    string `toml:"url"`
	APIURL string `toml:"api_url"`
}
