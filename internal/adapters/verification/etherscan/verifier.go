package etherscan

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// DefaultAPIURL is the multichain Etherscan endpoint, selected per chain by the chainid parameter
const DefaultAPIURL = "https://api.etherscan.io/v2/api"

const (
	resultPending         = "Pending in queue"
	resultAlreadyVerified = "already verified"
	resultPass            = "Pass - Verified"
)

// Verifier submits standard-json sources to an Etherscan-compatible API
type Verifier struct {
	apiKey       string
	httpClient   *http.Client
	log          *slog.Logger
	pollInterval time.Duration
	maxPolls     int
}

// NewVerifier creates a new Etherscan verifier
func NewVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *Verifier {
	return &Verifier{
		apiKey:       cfg.EtherscanAPIKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log,
		pollInterval: 3 * time.Second,
		maxPolls:     20,
	}
}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Verify submits the contract and polls until the explorer reports a final status
func (v *Verifier) Verify(ctx context.Context, req usecase.VerifyRequest) error {
	if v.apiKey == "" {
		return fmt.Errorf("%w: ETHERSCAN_API_KEY is not set", domain.ErrVerificationFailed)
	}
	if req.Network == nil {
		return fmt.Errorf("%w: no network selected", domain.ErrVerificationFailed)
	}

	info, err := loadBuildInfo(req.Artifact)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}

	form := url.Values{}
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", req.Address.Hex())
	form.Set("sourceCode", string(info.Input))
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("contractname", req.Artifact.SourceName+":"+req.Artifact.ContractName)
	form.Set("compilerversion", "v"+info.SolcLongVersion)
	// Etherscan's parameter name is misspelled
	form.Set("constructorArguements", hex.EncodeToString(req.ConstructorArgs))

	resp, err := v.post(ctx, req.Network, form)
	if err != nil {
		return err
	}
	if resp.Status != "1" {
		if isAlreadyVerified(resp.Result) {
			v.log.Info("contract already verified", "address", req.Address.Hex())
			return nil
		}
		return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, resp.Result)
	}

	v.log.Debug("verification submitted", "guid", resp.Result)
	return v.waitForResult(ctx, req.Network, resp.Result)
}

func (v *Verifier) waitForResult(ctx context.Context, network *config.Network, guid string) error {
	query := url.Values{}
	query.Set("module", "contract")
	query.Set("action", "checkverifystatus")
	query.Set("guid", guid)

	for i := 0; i < v.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(v.pollInterval):
		}

		resp, err := v.get(ctx, network, query)
		if err != nil {
			return err
		}

		switch {
		case resp.Result == resultPending:
			v.log.Debug("verification pending", "guid", guid)
			continue
		case resp.Result == resultPass, isAlreadyVerified(resp.Result):
			return nil
		default:
			return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, resp.Result)
		}
	}
	return fmt.Errorf("%w: timed out waiting for verification result (guid %s)", domain.ErrVerificationFailed, guid)
}

func (v *Verifier) post(ctx context.Context, network *config.Network, form url.Values) (*apiResponse, error) {
	endpoint, err := v.endpoint(network)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(httpReq)
}

func (v *Verifier) get(ctx context.Context, network *config.Network, query url.Values) (*apiResponse, error) {
	endpoint, err := v.endpoint(network)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for key, values := range query {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return v.do(httpReq)
}

// endpoint returns the API url with chain id and api key attached
func (v *Verifier) endpoint(network *config.Network) (string, error) {
	base := network.ExplorerAPIURL
	if base == "" {
		base = DefaultAPIURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid explorer api url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("chainid", strconv.FormatUint(network.ChainID, 10))
	q.Set("apikey", v.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (v *Verifier) do(req *http.Request) (*apiResponse, error) {
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read explorer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("invalid explorer response: %w", err)
	}
	return &out, nil
}

func isAlreadyVerified(result string) bool {
	return strings.Contains(strings.ToLower(result), resultAlreadyVerified)
}

var _ usecase.ContractVerifier = (*Verifier)(nil)
