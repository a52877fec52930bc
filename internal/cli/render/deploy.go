package render

import (
	"fmt"
	"io"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
)

// deployView is the JSON form of a deployment outcome
type deployView struct {
	Spec    domain.DeploymentSpecView `json:"spec"`
	Receipt *domain.DeploymentReceipt `json:"receipt"`
	Record  *domain.DeploymentRecord  `json:"record,omitempty"`
}

// DeployRenderer renders the outcome of a deployment
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, json bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: json}
}

// Render renders the deployment result
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	if r.json {
		return writeJSON(r.out, deployView{
			Spec:    result.Spec.View(),
			Receipt: result.Receipt,
			Record:  result.Record,
		})
	}

	receipt := result.Receipt
	if receipt.DryRun {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Dry run of %s on %s succeeded", result.Spec.Contract(), result.Spec.Network())))
		fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Deployer:"), receipt.From.Hex())
		fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Would deploy at:"), addressStyle.Sprint(receipt.ContractAddress.Hex()))
		fmt.Fprintf(r.out, "   %s %d (limit %d)\n", labelStyle.Sprint("Gas estimate:"), receipt.GasEstimate, result.Profile.Gas)
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s on %s", result.Spec.Contract(), result.Spec.Network())))
	fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Address:"), addressStyle.Sprint(receipt.ContractAddress.Hex()))
	fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Transaction:"), receipt.TxHash.Hex())
	fmt.Fprintf(r.out, "   %s %d\n", labelStyle.Sprint("Block:"), receipt.BlockNumber)
	fmt.Fprintf(r.out, "   %s %d\n", labelStyle.Sprint("Gas used:"), receipt.GasUsed)
	fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Deployer:"), receipt.From.Hex())
	if result.Record == nil {
		fmt.Fprintln(r.out, FormatWarning("deployment record was not saved"))
	}
	return nil
}
