package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// ProjectFile is the project configuration file looked up from the working directory
const ProjectFile = "nftm.toml"

// loadEnvFiles loads .env then .env.local from the project root without overriding the process environment
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectConfig parses nftm.toml, expanding ${VAR} references from the environment.
// A project without nftm.toml gets the built-in defaults.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, &domain.ParseError{Path: path, Err: err}
		}
	}

	cfg.Paths.Artifacts = os.ExpandEnv(cfg.Paths.Artifacts)
	cfg.Paths.Deployments = os.ExpandEnv(cfg.Paths.Deployments)
	cfg.FrontEnd.NetworkMapping = os.ExpandEnv(cfg.FrontEnd.NetworkMapping)

	for name, value := range cfg.NamedAccounts {
		cfg.NamedAccounts[name] = os.ExpandEnv(value)
	}

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Explorer.URL = os.ExpandEnv(network.Explorer.URL)
		network.Explorer.APIURL = os.ExpandEnv(network.Explorer.APIURL)
		cfg.Networks[name] = network
	}

	return cfg, nil
}
