package etherscan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nftmarket/nftm/internal/domain"
)

// buildInfo is the part of a Hardhat build-info file needed to verify sources
type buildInfo struct {
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// loadBuildInfo follows the artifact's .dbg.json pointer to its build-info file
func loadBuildInfo(artifact *domain.Artifact) (*buildInfo, error) {
	if artifact.Path == "" {
		return nil, fmt.Errorf("artifact %s has no source path", artifact.ContractName)
	}

	dbgPath := strings.TrimSuffix(artifact.Path, ".json") + ".dbg.json"
	data, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: dbgPath, Err: err}
	}

	var dbg struct {
		BuildInfo string `json:"buildInfo"`
	}
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, &domain.ParseError{Path: dbgPath, Err: err}
	}
	if dbg.BuildInfo == "" {
		return nil, &domain.ParseError{Path: dbgPath, Err: fmt.Errorf("missing buildInfo")}
	}

	infoPath := dbg.BuildInfo
	if !filepath.IsAbs(infoPath) {
		infoPath = filepath.Join(filepath.Dir(dbgPath), infoPath)
	}

	data, err = os.ReadFile(infoPath)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: infoPath, Err: err}
	}

	var info buildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, &domain.ParseError{Path: infoPath, Err: err}
	}
	if info.SolcLongVersion == "" || len(info.Input) == 0 {
		return nil, &domain.ParseError{Path: infoPath, Err: fmt.Errorf("missing compiler input")}
	}
	return &info, nil
}
