package render

import (
	"fmt"
	"io"

	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DevNodeRenderer renders dev node operation results
type DevNodeRenderer struct {
	out  io.Writer
	json bool
}

// NewDevNodeRenderer creates a new dev node renderer
func NewDevNodeRenderer(out io.Writer, json bool) *DevNodeRenderer {
	return &DevNodeRenderer{out: out, json: json}
}

// Render renders the dev node operation result
func (r *DevNodeRenderer) Render(result *usecase.ManageDevNodeResult) error {
	if r.json {
		return writeJSON(r.out, map[string]any{
			"operation": result.Operation,
			"instance":  result.Instance,
			"status":    result.Status,
			"message":   result.Message,
		})
	}

	switch result.Operation {
	case "start", "restart":
		return r.renderStart(result)
	case "stop":
		fmt.Fprintln(r.out, FormatSuccess(result.Message))
		return nil
	case "status":
		return r.renderStatus(result)
	default:
		return fmt.Errorf("unknown operation: %s", result.Operation)
	}
}

func (r *DevNodeRenderer) renderStart(result *usecase.ManageDevNodeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	if result.Status != nil {
		fmt.Fprintln(r.out, warnStyle.Sprintf("📋 Logs: %s", result.Status.LogFile))
		fmt.Fprintln(r.out, networkStyle.Sprintf("🌐 RPC URL: %s", result.Status.RPCURL))
	}
	return nil
}

func (r *DevNodeRenderer) renderStatus(result *usecase.ManageDevNodeResult) error {
	title := cases.Title(language.English).String(result.Instance.Name)
	fmt.Fprintln(r.out, headerStyle.Sprintf("📊 Dev Node Status (%s):", title))

	status := result.Status
	if !status.Running {
		fmt.Fprintln(r.out, errorStyle.Sprint("Status: 🔴 Not running"))
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("PID file:"), result.Instance.PidFile)
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Log file:"), result.Instance.LogFile)
		return nil
	}

	fmt.Fprintln(r.out, okStyle.Sprintf("Status: 🟢 Running (PID %d)", status.PID))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("RPC URL:"), status.RPCURL)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Log file:"), status.LogFile)
	if status.RPCHealthy {
		fmt.Fprintln(r.out, okStyle.Sprintf("RPC Health: ✅ Responding (chain %d, block %d)", status.ChainID, status.BlockNumber))
	} else {
		fmt.Fprintln(r.out, errorStyle.Sprint("RPC Health: ❌ Not responding"))
	}
	return nil
}

// RenderLogsHeader renders the header for logs streaming
func (r *DevNodeRenderer) RenderLogsHeader(result *usecase.ManageDevNodeResult) {
	fmt.Fprintln(r.out, headerStyle.Sprintf("📋 Showing dev node '%s' logs (Ctrl+C to exit):", result.Instance.Name))
	fmt.Fprintf(r.out, "%s %s\n\n", labelStyle.Sprint("Log file:"), result.Status.LogFile)
}
