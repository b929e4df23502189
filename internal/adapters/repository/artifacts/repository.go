package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// Repository indexes compiled contract artifacts under the artifacts directory
type Repository struct {
	root      string
	artifacts map[string]*domain.Artifact // key: contract name
	log       *slog.Logger
	mu        sync.RWMutex
	indexed   bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		root:      cfg.ArtifactsDir,
		artifacts: make(map[string]*domain.Artifact),
		log:       log,
	}
}

// rawArtifact covers both Hardhat (bytecode string) and Foundry (bytecode.object) layouts
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     bytecodeField   `json:"bytecode"`
}

type bytecodeField string

func (b *bytecodeField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = bytecodeField(obj.Object)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = bytecodeField(s)
	return nil
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.root); err != nil {
		return fmt.Errorf("artifacts directory %s not found, compile the contracts first: %w", r.root, err)
	}

	err := filepath.WalkDir(r.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not every JSON file under artifacts is a contract
		r.log.Debug("skipping artifact", "path", path, "error", err)
		return nil
	}
	if raw.Bytecode == "" || raw.Bytecode == "0x" || len(raw.ABI) == 0 {
		// interfaces and abstract contracts
		return nil
	}

	bytecode, err := hexutil.Decode(string(raw.Bytecode))
	if err != nil {
		r.log.Debug("skipping artifact with unlinked bytecode", "path", path, "error", err)
		return nil
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return fmt.Errorf("invalid abi in %s: %w", path, err)
	}

	name := raw.ContractName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	if existing, ok := r.artifacts[name]; ok {
		r.log.Warn("duplicate artifact name, keeping first", "contract", name, "kept", existing.Path, "ignored", path)
		return nil
	}

	r.artifacts[name] = &domain.Artifact{
		ContractName: name,
		SourceName:   raw.SourceName,
		Path:         path,
		ABI:          parsed,
		RawABI:       raw.ABI,
		Bytecode:     bytecode,
	}
	r.log.Debug("indexed artifact", "contract", name, "path", path)
	return nil
}

// GetArtifact returns the artifact of a contract, suggesting close names when missing
func (r *Repository) GetArtifact(ctx context.Context, contractName string) (*domain.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if artifact, ok := r.artifacts[contractName]; ok {
		return artifact, nil
	}

	return nil, domain.ContractNotFoundErr{
		Name:        contractName,
		Suggestions: r.suggest(contractName),
	}
}

// ListContracts returns all indexed contract names, sorted
func (r *Repository) ListContracts(ctx context.Context) ([]string, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.names(), nil
}

func (r *Repository) names() []string {
	names := make([]string, 0, len(r.artifacts))
	for name := range r.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns up to three indexed names that fuzzily match the query
func (r *Repository) suggest(query string) []string {
	names := r.names()
	matches := fuzzy.Find(strings.ToLower(query), lowered(names))

	var suggestions []string
	for _, match := range matches {
		suggestions = append(suggestions, names[match.Index])
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

func lowered(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}

// Ensure Repository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*Repository)(nil)
