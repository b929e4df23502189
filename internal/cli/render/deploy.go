package render

import (
	"fmt"
	"io"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/usecase"
)

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render prints one block per executed step
func (r *DeployRenderer) Render(result *usecase.RunDeploymentsResult) error {
	if result.Network != nil {
		headerStyle.Fprintf(r.out, "Deployments on %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	}
	if len(result.Steps) == 0 {
		fmt.Fprintln(r.out, "No steps matched the selected tags")
		return nil
	}

	for _, step := range result.Steps {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "%s %s\n", faintStyle.Sprintf("[%s]", step.Step.ID), step.Step.Name)

		switch {
		case step.Deployment != nil:
			r.renderDeployment(step.Deployment)
		case step.FrontEnd != nil:
			r.renderFrontEnd(step.FrontEnd)
		}
	}
	return nil
}

func (r *DeployRenderer) renderDeployment(result *usecase.DeployContractResult) {
	dep := result.Deployment
	fprintField(r.out, "Contract", contractStyle.Sprint(dep.ContractName))
	fprintField(r.out, "Address", addressStyle.Sprint(dep.Address.Hex()))
	fprintField(r.out, "Transaction", dep.TransactionHash.Hex())
	fprintField(r.out, "Block", dep.BlockNumber)
	fprintField(r.out, "Deployer", dep.Deployer.Hex())
	fprintField(r.out, "Verification", verificationLabel(result.Verification))
}

// RenderFrontEnd prints the outcome of a standalone registry update
func (r *DeployRenderer) RenderFrontEnd(result *usecase.UpdateFrontEndResult) error {
	r.renderFrontEnd(result)
	return nil
}

func (r *DeployRenderer) renderFrontEnd(result *usecase.UpdateFrontEndResult) {
	if result.Skipped {
		fmt.Fprintln(r.out, faintStyle.Sprint("  skipped (UPDATE_FRONT_END not set)"))
		return
	}
	fprintField(r.out, "Registry", result.Path)
	fprintField(r.out, "Network key", result.NetworkKey)
	for _, rec := range result.Recorded {
		state := faintStyle.Sprint("already recorded")
		if rec.Added {
			state = successStyle.Sprint("added")
		}
		fmt.Fprintf(r.out, "  %s %s %s\n", contractStyle.Sprint(rec.Contract), rec.Address, state)
	}
}

func verificationLabel(status domain.VerificationStatus) string {
	switch status {
	case domain.VerificationStatusVerified:
		return successStyle.Sprint(Title(string(status)))
	case domain.VerificationStatusFailed:
		return failStyle.Sprint(Title(string(status)))
	default:
		return faintStyle.Sprint(Title(string(status)))
	}
}

var _ Renderer[*usecase.RunDeploymentsResult] = (*DeployRenderer)(nil)
