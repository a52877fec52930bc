package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/ethereum/go-ethereum/crypto"
)

// DeployContractParams contains parameters for deploying the contract
type DeployContractParams struct {
	Network string
	DryRun  bool
}

// DeployContractResult contains the outcome of a deployment
type DeployContractResult struct {
	Spec    *domain.DeploymentSpec
	Profile *domain.NetworkProfile
	Receipt *domain.DeploymentReceipt
	Record  *domain.DeploymentRecord // nil for dry runs
}

// DeployContract resolves the constructor arguments for a network and sends
// the contract creation transaction.
type DeployContract struct {
	resolver    *ResolveDeployment
	credentials CredentialSource
	executor    DeploymentExecutor
	store       DeploymentStore
	progress    ProgressSink
	now         func() time.Time
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	resolver *ResolveDeployment,
	credentials CredentialSource,
	executor DeploymentExecutor,
	store DeploymentStore,
	progress ProgressSink,
) *DeployContract {
	return &DeployContract{
		resolver:    resolver,
		credentials: credentials,
		executor:    executor,
		store:       store,
		progress:    progress,
		now:         time.Now,
	}
}

// Run executes the use case. Every resolver and credential error is returned
// before a transaction is built.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "resolving",
		Message: fmt.Sprintf("Resolving constructor arguments for %s", params.Network),
		Spinner: true,
	})

	resolved, err := uc.resolver.Run(ctx, ResolveDeploymentParams{
		Network:         params.Network,
		RequireArtifact: true,
	})
	if err != nil {
		return nil, err
	}
	if len(resolved.Contract.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact %s has no creation bytecode", resolved.Contract.ArtifactPath)
	}

	signer, err := uc.credentials.Signer()
	if err != nil {
		return nil, err
	}
	rpcURL, err := uc.credentials.ExpandURL(resolved.Profile.RPCURL)
	if err != nil {
		return nil, err
	}

	slog.Debug("deploying",
		"network", resolved.Profile.Name,
		"contract", resolved.Spec.Contract(),
		"args", resolved.Spec.Len(),
		"fingerprint", resolved.Spec.Fingerprint().Hex(),
		"from", crypto.PubkeyToAddress(signer.PublicKey).Hex(),
		"dry_run", params.DryRun,
	)

	stage := "broadcasting"
	message := fmt.Sprintf("Deploying %s to %s", resolved.Spec.Contract(), resolved.Profile.Name)
	if params.DryRun {
		stage = "estimating"
		message = fmt.Sprintf("Estimating %s deployment on %s", resolved.Spec.Contract(), resolved.Profile.Name)
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: message, Spinner: true})

	receipt, err := uc.executor.Execute(ctx, ExecuteDeploymentRequest{
		Spec:     resolved.Spec,
		Profile:  resolved.Profile,
		RPCURL:   rpcURL,
		Bytecode: resolved.Contract.Bytecode,
		Signer:   signer,
		DryRun:   params.DryRun,
	})
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})
	if err != nil {
		return nil, fmt.Errorf("deployment to %s failed: %w", resolved.Profile.Name, err)
	}

	result := &DeployContractResult{
		Spec:    resolved.Spec,
		Profile: resolved.Profile,
		Receipt: receipt,
	}
	if receipt.DryRun {
		return result, nil
	}

	record := &domain.DeploymentRecord{
		Network:     resolved.Profile.Name,
		ChainID:     resolved.Profile.ChainID,
		Contract:    resolved.Spec.Contract(),
		Address:     receipt.ContractAddress.Hex(),
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		Deployer:    receipt.From.Hex(),
		Fingerprint: resolved.Spec.Fingerprint().Hex(),
		DeployedAt:  uc.now().UTC(),
	}
	if err := uc.store.Save(ctx, record); err != nil {
		// the contract is on chain; report the address with the error
		return result, fmt.Errorf("deployed at %s but failed to save record: %w", record.Address, err)
	}
	result.Record = record

	return result, nil
}
