package render

import (
	"fmt"
	"io"

	"github.com/nftmarket/nftm/internal/usecase"
)

// NodeRenderer renders local node operations
type NodeRenderer struct {
	out io.Writer
}

// NewNodeRenderer creates a new node renderer
func NewNodeRenderer(out io.Writer) *NodeRenderer {
	return &NodeRenderer{out: out}
}

// Render prints the outcome of a node operation
func (r *NodeRenderer) Render(result *usecase.ManageNodeResult) error {
	if result.Message != "" {
		fmt.Fprintln(r.out, FormatSuccess(result.Message))
	}

	status := result.Status
	if status == nil {
		return nil
	}

	if result.Operation == "status" {
		headerStyle.Fprintf(r.out, "Local node (port %s):\n", result.Node.Port)
	}
	if !status.Running {
		fprintField(r.out, "Status", failStyle.Sprint("not running"))
		fprintField(r.out, "Log file", faintStyle.Sprint(status.LogFile))
		return nil
	}

	fprintField(r.out, "Status", successStyle.Sprintf("running (PID %d)", status.PID))
	fprintField(r.out, "RPC URL", status.RPCURL)
	if status.RPCHealthy {
		fprintField(r.out, "Chain ID", status.ChainID)
		fprintField(r.out, "Block", status.BlockNumber)
	} else {
		fprintField(r.out, "RPC", failStyle.Sprintf("not responding (%s)", status.Error))
	}
	fprintField(r.out, "Log file", faintStyle.Sprint(status.LogFile))
	return nil
}

var _ Renderer[*usecase.ManageNodeResult] = (*NodeRenderer)(nil)
