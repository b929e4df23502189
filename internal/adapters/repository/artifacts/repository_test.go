package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marketplaceABI = `[{"type":"function","name":"getProceeds","stateMutability":"view","inputs":[{"name":"seller","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}]`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	root := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(&config.RuntimeConfig{ArtifactsDir: root}, log), root
}

func TestRepository_HardhatArtifact(t *testing.T) {
	repo, root := newTestRepository(t)
	writeArtifact(t, root, "contracts/NftMarketplace.sol/NftMarketplace.json",
		`{"contractName":"NftMarketplace","sourceName":"contracts/NftMarketplace.sol","abi":`+marketplaceABI+`,"bytecode":"0x6001600c60003960016000f300"}`)
	writeArtifact(t, root, "contracts/NftMarketplace.sol/NftMarketplace.dbg.json", `{"buildInfo":"../../build-info/x.json"}`)
	writeArtifact(t, root, "build-info/x.json", `{"id":"x"}`)

	artifact, err := repo.GetArtifact(context.Background(), domain.MarketplaceContract)
	require.NoError(t, err)
	assert.Equal(t, "contracts/NftMarketplace.sol", artifact.SourceName)
	assert.Equal(t, []byte{0x60, 0x01, 0x60, 0x0c, 0x60, 0x00, 0x39, 0x60, 0x01, 0x60, 0x00, 0xf3, 0x00}, artifact.Bytecode)
	assert.Contains(t, artifact.ABI.Methods, "getProceeds")
	assert.JSONEq(t, marketplaceABI, string(artifact.RawABI))
}

func TestRepository_FoundryArtifact(t *testing.T) {
	repo, root := newTestRepository(t)
	writeArtifact(t, root, "BasicNft.sol/BasicNft.json",
		`{"abi":[],"bytecode":{"object":"0x00"}}`)

	artifact, err := repo.GetArtifact(context.Background(), domain.BasicNftContract)
	require.NoError(t, err)
	assert.Equal(t, domain.BasicNftContract, artifact.ContractName)
	assert.Equal(t, []byte{0x00}, artifact.Bytecode)
}

func TestRepository_SkipsInterfaces(t *testing.T) {
	repo, root := newTestRepository(t)
	writeArtifact(t, root, "IERC721.sol/IERC721.json", `{"contractName":"IERC721","abi":[],"bytecode":"0x"}`)

	names, err := repo.ListContracts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRepository_Suggestions(t *testing.T) {
	repo, root := newTestRepository(t)
	for _, name := range []string{"NftMarketplace", "BasicNft"} {
		writeArtifact(t, root, name+".sol/"+name+".json",
			`{"contractName":"`+name+`","abi":[],"bytecode":"0x00"}`)
	}

	_, err := repo.GetArtifact(context.Background(), "nftmarket")

	var notFound domain.ContractNotFoundErr
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Equal(t, []string{"NftMarketplace"}, notFound.Suggestions)
}

func TestRepository_MissingDirectory(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewRepository(&config.RuntimeConfig{ArtifactsDir: filepath.Join(t.TempDir(), "artifacts")}, log)

	_, err := repo.GetArtifact(context.Background(), domain.MarketplaceContract)
	assert.ErrorContains(t, err, "compile the contracts first")
}
