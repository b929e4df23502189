package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerStyle   = color.New(color.FgCyan, color.Bold)
	contractStyle = color.New(color.FgYellow)
	addressStyle  = color.New(color.FgWhite)
	faintStyle    = color.New(color.Faint)
	successStyle  = color.New(color.FgGreen)
	failStyle     = color.New(color.FgRed)

	titleCaser = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Keep only the innermost cause of an error chain
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return failStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✅ %s", message)
}

// FormatEther renders a wei amount in ETH without trailing zeros
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0 ETH"
	}
	value := new(big.Float).SetPrec(256).SetInt(wei)
	value.Quo(value, new(big.Float).SetPrec(256).SetInt64(params.Ether))
	return value.Text('f', -1) + " ETH"
}

// Title capitalizes a label such as a verification status
func Title(s string) string {
	return titleCaser.String(s)
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newTable returns a borderless table writing to out
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box.PaddingRight = "   "
	t.Style().Box.PaddingLeft = ""
	return t
}

func fprintField(out io.Writer, label string, value any) {
	fmt.Fprintf(out, "  %-14s %v\n", label+":", value)
}
