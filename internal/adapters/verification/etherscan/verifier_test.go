package etherscan

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contractAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

// writeHardhatArtifacts lays out an artifact, its .dbg.json and the build-info it points to
func writeHardhatArtifacts(t *testing.T) *domain.Artifact {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "contracts", "NftMarketplace.sol")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build-info"), 0755))

	artifactPath := filepath.Join(dir, "NftMarketplace.json")
	require.NoError(t, os.WriteFile(artifactPath, []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NftMarketplace.dbg.json"),
		[]byte(`{"_format":"hh-sol-dbg-1","buildInfo":"../../build-info/abc.json"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build-info", "abc.json"),
		[]byte(`{"solcLongVersion":"0.8.7+commit.e28d00a7","input":{"language":"Solidity","sources":{}}}`), 0644))

	return &domain.Artifact{
		ContractName: "NftMarketplace",
		SourceName:   "contracts/NftMarketplace.sol",
		Path:         artifactPath,
	}
}

type fakeExplorer struct {
	mu         sync.Mutex
	submitted  map[string]string
	submit     apiResponse
	statuses   []string
	statusHits int
}

func (f *fakeExplorer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		assert.Equal(t, "11155111", r.URL.Query().Get("chainid"))

		var resp apiResponse
		switch r.Method {
		case http.MethodPost:
			assert.NoError(t, r.ParseForm())
			f.submitted = map[string]string{}
			for key := range r.PostForm {
				f.submitted[key] = r.PostForm.Get(key)
			}
			resp = f.submit
		default:
			assert.Equal(t, "checkverifystatus", r.URL.Query().Get("action"))
			assert.Equal(t, "guid-1", r.URL.Query().Get("guid"))
			resp = apiResponse{Status: "1", Result: f.statuses[f.statusHits]}
			f.statusHits++
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
}

func newTestVerifier(apiKey string) *Verifier {
	v := NewVerifier(&config.RuntimeConfig{EtherscanAPIKey: apiKey}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	v.pollInterval = time.Millisecond
	v.maxPolls = 5
	return v
}

func verifyRequest(t *testing.T, apiURL string) usecase.VerifyRequest {
	return usecase.VerifyRequest{
		Address:         contractAddr,
		Artifact:        writeHardhatArtifacts(t),
		ConstructorArgs: []byte{0x01, 0x02},
		Network:         &config.Network{Name: "sepolia", ChainID: 11155111, ExplorerAPIURL: apiURL},
	}
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name     string
		submit   apiResponse
		statuses []string
		wantErr  bool
		polls    int
	}{
		{
			name:     "pending then verified",
			submit:   apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
			statuses: []string{resultPending, resultPending, resultPass},
			polls:    3,
		},
		{
			name:   "already verified on submit",
			submit: apiResponse{Status: "0", Message: "NOTOK", Result: "Contract source code already verified"},
		},
		{
			name:     "already verified while polling",
			submit:   apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
			statuses: []string{"Already Verified"},
			polls:    1,
		},
		{
			name:    "rejected on submit",
			submit:  apiResponse{Status: "0", Message: "NOTOK", Result: "Invalid API Key"},
			wantErr: true,
		},
		{
			name:     "bytecode mismatch",
			submit:   apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
			statuses: []string{"Fail - Unable to verify"},
			wantErr:  true,
			polls:    1,
		},
		{
			name:     "never finishes",
			submit:   apiResponse{Status: "1", Message: "OK", Result: "guid-1"},
			statuses: []string{resultPending, resultPending, resultPending, resultPending, resultPending},
			wantErr:  true,
			polls:    5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := &fakeExplorer{submit: tt.submit, statuses: tt.statuses}
			server := httptest.NewServer(explorer.handler(t))
			defer server.Close()

			err := newTestVerifier("secret").Verify(context.Background(), verifyRequest(t, server.URL))

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrVerificationFailed)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.polls, explorer.statusHits)

			assert.Equal(t, "verifysourcecode", explorer.submitted["action"])
			assert.Equal(t, contractAddr.Hex(), explorer.submitted["contractaddress"])
			assert.Equal(t, "contracts/NftMarketplace.sol:NftMarketplace", explorer.submitted["contractname"])
			assert.Equal(t, "v0.8.7+commit.e28d00a7", explorer.submitted["compilerversion"])
			assert.Equal(t, "0102", explorer.submitted["constructorArguements"])
			assert.JSONEq(t, `{"language":"Solidity","sources":{}}`, explorer.submitted["sourceCode"])
		})
	}
}

func TestVerifier_MissingAPIKey(t *testing.T) {
	err := newTestVerifier("").Verify(context.Background(), verifyRequest(t, "http://127.0.0.1:0"))
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.ErrorContains(t, err, "ETHERSCAN_API_KEY")
}

func TestVerifier_MissingBuildInfo(t *testing.T) {
	req := verifyRequest(t, "http://127.0.0.1:0")
	req.Artifact.Path = filepath.Join(t.TempDir(), "Missing.json")

	err := newTestVerifier("secret").Verify(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestVerifier_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := newTestVerifier("secret").Verify(context.Background(), verifyRequest(t, server.URL))
	assert.ErrorContains(t, err, "429")
}
