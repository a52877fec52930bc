package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// DeploymentsRenderer renders recorded deployments grouped by network
type DeploymentsRenderer struct {
	out  io.Writer
	json bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, json bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:  out,
		json: json,
	}
}

// RenderDeploymentList renders deployments as one table per network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if r.json {
		return writeJSON(r.out, result.Deployments)
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *domain.DeploymentRecord) string { return d.Network })
	networks := lo.Keys(groups)
	sort.Strings(networks)

	for i, network := range networks {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		records := groups[network]
		fmt.Fprintf(r.out, "%s %s\n", networkStyle.Sprintf(" %s ", network), labelStyle.Sprintf("chain %d", records[0].ChainID))

		rows := make([]table.Row, 0, len(records))
		for _, d := range records {
			rows = append(rows, table.Row{
				headerStyle.Sprint(d.Contract),
				addressStyle.Sprint(d.Address),
				labelStyle.Sprint(d.TxHash),
				faintStyle.Sprint(d.DeployedAt.Local().Format("2006-01-02 15:04:05")),
			})
		}
		fmt.Fprintln(r.out, renderTable(nil, rows))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d deployment(s) on %d network(s)\n", result.Summary.Total, len(result.Summary.ByNetwork))
	return nil
}
