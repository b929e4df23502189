package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nftmarket/nftm/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render prints every known network with its chain id and kind
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in nftm.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "KIND", "CONFIRMATIONS", "RPC"})
	for _, network := range result.Networks {
		marker := ""
		if network.Name == result.Current {
			marker = successStyle.Sprint("*")
		}
		if network.Error != "" {
			t.AppendRow(table.Row{marker, network.Name, failStyle.Sprint("error"), "", "", faintStyle.Sprint(network.Error)})
			continue
		}
		kind := "live"
		if network.Development {
			kind = "development"
		}
		t.AppendRow(table.Row{marker, network.Name, network.ChainID, Title(kind), network.Confirmations, faintStyle.Sprint(network.RPCURL)})
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
