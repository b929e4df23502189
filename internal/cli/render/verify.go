package render

import (
	"fmt"
	"io"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render prints the verification status of one contract
func (r *VerifyRenderer) Render(result *usecase.VerifyContractResult) error {
	dep := result.Deployment
	fmt.Fprintf(r.out, "%s at %s: %s\n",
		contractStyle.Sprint(dep.ContractName),
		addressStyle.Sprint(dep.Address.Hex()),
		verificationLabel(result.Status))

	if result.Reason != "" {
		fmt.Fprintf(r.out, "  %s\n", faintStyle.Sprint(result.Reason))
	}
	if result.Status == domain.VerificationStatusVerified && r.explorerURL(result) != "" {
		fmt.Fprintf(r.out, "  %s\n", r.explorerURL(result))
	}
	return nil
}

func (r *VerifyRenderer) explorerURL(result *usecase.VerifyContractResult) string {
	if result.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", result.ExplorerURL, result.Deployment.Address.Hex())
}

var _ Renderer[*usecase.VerifyContractResult] = (*VerifyRenderer)(nil)
