package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// RegistryStoreAdapter keeps the front-end address registry in a single JSON file
type RegistryStoreAdapter struct {
	path string
}

// NewRegistryStoreAdapter creates a registry store for the configured front-end file
func NewRegistryStoreAdapter(cfg *config.RuntimeConfig) *RegistryStoreAdapter {
	return &RegistryStoreAdapter{path: cfg.FrontEndFile}
}

// Path returns the location of the registry file
func (s *RegistryStoreAdapter) Path() string {
	return s.path
}

// Load reads and parses the whole registry. A missing file is an empty registry.
func (s *RegistryStoreAdapter) Load(_ context.Context) (domain.AddressRegistry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewAddressRegistry(), nil
		}
		return nil, &domain.IOError{Op: "read", Path: s.path, Err: err}
	}

	var registry domain.AddressRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, &domain.ParseError{Path: s.path, Err: err}
	}
	if registry == nil {
		registry = domain.NewAddressRegistry()
	}

	return registry, nil
}

// Save overwrites the registry file with the full registry
func (s *RegistryStoreAdapter) Save(_ context.Context, registry domain.AddressRegistry) error {
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return &domain.ParseError{Path: s.path, Err: err}
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return &domain.IOError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}

// Ensure RegistryStoreAdapter implements RegistryStore
var _ usecase.RegistryStore = (*RegistryStoreAdapter)(nil)
