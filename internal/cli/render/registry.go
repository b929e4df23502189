package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nftmarket/nftm/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats of the registry renderer
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// RegistryRenderer renders the front-end address registry
type RegistryRenderer struct {
	out    io.Writer
	format string
}

// NewRegistryRenderer creates a new registry renderer
func NewRegistryRenderer(out io.Writer, format string) (*RegistryRenderer, error) {
	switch format {
	case "", FormatTable:
		format = FormatTable
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join([]string{FormatTable, FormatJSON, FormatYAML}, ", "))
	}
	return &RegistryRenderer{out: out, format: format}, nil
}

// Render writes the registry in the selected format
func (r *RegistryRenderer) Render(result *usecase.ShowRegistryResult) error {
	switch r.format {
	case FormatJSON:
		return RenderJSON(r.out, result.Registry)
	case FormatYAML:
		encoder := yaml.NewEncoder(r.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(result.Registry); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return r.renderTable(result)
	}
}

func (r *RegistryRenderer) renderTable(result *usecase.ShowRegistryResult) error {
	headerStyle.Fprintf(r.out, "Address registry %s\n\n", faintStyle.Sprint(result.Path))
	if len(result.Registry) == 0 {
		fmt.Fprintln(r.out, "No addresses recorded")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"NETWORK", "CONTRACT", "ADDRESS", ""})
	for _, network := range result.Registry.Networks() {
		for _, contract := range result.Registry.Contracts(network) {
			addresses := result.Registry.Addresses(network, contract)
			for i, address := range addresses {
				marker := ""
				if i == len(addresses)-1 {
					marker = successStyle.Sprint("latest")
				}
				t.AppendRow(table.Row{network, contractStyle.Sprint(contract), address, marker})
			}
		}
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ShowRegistryResult] = (*RegistryRenderer)(nil)
