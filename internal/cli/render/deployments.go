package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/usecase"
)

// DeploymentsRenderer renders deployment records
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render prints the deployment records of a network as a table
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		return nil
	}

	headerStyle.Fprintf(r.out, "Deployments on %s\n\n", result.Network)
	t := newTable(r.out)
	t.AppendHeader(table.Row{"CONTRACT", "ADDRESS", "BLOCK", "VERIFIED", "DEPLOYED"})
	for _, dep := range result.Deployments {
		verified := faintStyle.Sprint("no")
		if dep.Verified {
			verified = successStyle.Sprint("yes")
		}
		t.AppendRow(table.Row{
			contractStyle.Sprint(dep.ContractName),
			dep.Address.Hex(),
			dep.BlockNumber,
			verified,
			faintStyle.Sprint(dep.DeployedAt.Format("2006-01-02 15:04:05")),
		})
	}
	t.Render()

	fmt.Fprintf(r.out, "\nTotal: %d, verified: %d\n", result.Summary.Total, result.Summary.Verified)
	return nil
}

// RenderDeployment prints the details of one deployment record
func (r *DeploymentsRenderer) RenderDeployment(dep *domain.Deployment) error {
	headerStyle.Fprintf(r.out, "Deployment: %s/%s\n", dep.Network, dep.ContractName)
	fprintField(r.out, "Contract", contractStyle.Sprint(dep.ContractName))
	fprintField(r.out, "Address", addressStyle.Sprint(dep.Address.Hex()))
	fprintField(r.out, "Chain ID", dep.ChainID)
	fprintField(r.out, "Transaction", dep.TransactionHash.Hex())
	fprintField(r.out, "Block", dep.BlockNumber)
	fprintField(r.out, "Deployer", dep.Deployer.Hex())
	fprintField(r.out, "Confirmations", dep.Confirmations)
	if dep.ConstructorArgs != "" {
		fprintField(r.out, "Args", dep.ConstructorArgs)
	}
	fprintField(r.out, "Verified", dep.Verified)
	fprintField(r.out, "Deployed at", dep.DeployedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)
