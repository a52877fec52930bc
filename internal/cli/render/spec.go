package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// SpecRenderer renders a resolved deployment spec
type SpecRenderer struct {
	out    io.Writer
	format string
}

// NewSpecRenderer creates a new spec renderer
func NewSpecRenderer(out io.Writer, format string) *SpecRenderer {
	return &SpecRenderer{out: out, format: format}
}

// Render renders the resolution result in the configured format
func (r *SpecRenderer) Render(result *usecase.ResolveDeploymentResult) error {
	view := result.Spec.View()
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, view)
	case FormatYAML:
		return writeYAML(r.out, view)
	}

	fmt.Fprintf(r.out, "%s on %s (chain %d)\n",
		headerStyle.Sprint(view.Contract), networkStyle.Sprint(view.Network), view.ChainID)
	fmt.Fprintf(r.out, "%s %s\n\n", labelStyle.Sprint("Source:"), result.Profile.Source)

	rows := make([]table.Row, 0, len(view.Args))
	for i, arg := range view.Args {
		rows = append(rows, table.Row{strconv.Itoa(i), arg.Name, arg.Type, addressStyle.Sprint(arg.Value)})
	}
	fmt.Fprintln(r.out, renderTable(table.Row{"#", "NAME", "TYPE", "VALUE"}, rows))
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "%s %d\n", labelStyle.Sprint("Gas limit:"), result.Profile.Gas)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Gas price:"), result.Profile.GasPriceString())
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Encoded args:"), view.EncodedArgs)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Fingerprint:"), view.Fingerprint)

	if !view.ArityChecked {
		fmt.Fprintln(r.out, FormatWarning("no compiled artifact found, arguments are in declaration order"))
	}
	return nil
}
