package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// networkView is the JSON form of one network status
type networkView struct {
	Name     string `json:"name"`
	ChainID  uint64 `json:"chainId"`
	Status   string `json:"status"`
	GasLimit uint64 `json:"gas,omitempty"`
	GasPrice string `json:"gasPrice,omitempty"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, json bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:  out,
		json: json,
	}
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if r.json {
		views := make([]networkView, 0, len(result.Networks))
		for _, n := range result.Networks {
			v := networkView{Name: n.Name, ChainID: n.ChainID, Status: n.Status}
			if n.Profile != nil {
				v.GasLimit = n.Profile.Gas
				v.GasPrice = n.Profile.GasPriceString()
				v.Source = n.Profile.Source
			}
			if n.Error != nil {
				v.Error = n.Error.Error()
			}
			views = append(views, v)
		}
		return writeJSON(r.out, views)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deploy.toml")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	rows := make([]table.Row, 0, len(result.Networks))
	var failures []usecase.NetworkStatus
	for _, network := range result.Networks {
		icon := okStyle.Sprint("✅")
		gas, price, source := "", "", ""
		if network.Profile != nil {
			gas = strconv.FormatUint(network.Profile.Gas, 10)
			price = network.Profile.GasPriceString()
			source = network.Profile.Source
		}
		if network.Error != nil {
			icon = errorStyle.Sprint("❌")
			failures = append(failures, network)
		}
		rows = append(rows, table.Row{icon, networkStyle.Sprint(network.Name), network.ChainID, gas, price, labelStyle.Sprint(source)})
	}
	fmt.Fprintln(r.out, renderTable(table.Row{"", "NETWORK", "CHAIN", "GAS", "GAS PRICE", "SOURCE"}, rows))

	if len(failures) > 0 {
		fmt.Fprintln(r.out)
		for _, network := range failures {
			fmt.Fprintf(r.out, "  %s %s\n", errorStyle.Sprintf("%s:", network.Name), network.Error)
		}
	}
	return nil
}
