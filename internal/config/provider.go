package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default locations relative to the project root
const (
	DefaultArtifactsDir   = "artifacts"
	DefaultDeploymentsDir = "deployments"
	DefaultFrontEndFile   = "../frontend-moralis/constants/networkMapping.json"
	DefaultNetwork        = "hardhat"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		ArtifactsDir:      resolvePath(projectRoot, firstNonEmpty(project.Paths.Artifacts, DefaultArtifactsDir)),
		DeploymentsDir:    resolvePath(projectRoot, firstNonEmpty(project.Paths.Deployments, DefaultDeploymentsDir)),
		FrontEndFile:      resolvePath(projectRoot, firstNonEmpty(v.GetString("frontend_file"), project.FrontEnd.NetworkMapping, DefaultFrontEndFile)),
		FrontEndKey:       config.RegistryKeyChainID,
		DevelopmentChains: DefaultDevelopmentChains,
		NamedAccounts:     project.NamedAccounts,
		// Read after loadProjectConfig so .env files are honored
		EtherscanAPIKey: os.Getenv("ETHERSCAN_API_KEY"),
		UpdateFrontEnd:  os.Getenv("UPDATE_FRONT_END") != "",
		Debug:           v.GetBool("debug"),
		NonInteractive:  v.GetBool("non_interactive"),
		JSON:            v.GetBool("json"),
		Timeout:         v.GetDuration("timeout"),
		ProjectConfig:   project,
	}

	if project.FrontEnd.Key != "" {
		key := config.RegistryKey(project.FrontEnd.Key)
		if key != config.RegistryKeyChainID && key != config.RegistryKeyName {
			return nil, fmt.Errorf("invalid [frontend] key %q: expected %q or %q", key, config.RegistryKeyChainID, config.RegistryKeyName)
		}
		cfg.FrontEndKey = key
	}
	if len(project.DevelopmentChains) > 0 {
		cfg.DevelopmentChains = project.DevelopmentChains
	}
	if cfg.NamedAccounts == nil {
		cfg.NamedAccounts = map[string]string{}
	}

	if networkName := v.GetString("network"); networkName != "" {
		network, err := NewNetworkResolver(project).Resolve(context.Background(), networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find nftm.toml.
// Without one the working directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("NFTM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		if err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
