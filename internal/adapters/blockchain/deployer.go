package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the subset of ethclient.Client the deployer needs
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// DeployerAdapter implements usecase.DeploymentExecutor over JSON-RPC
type DeployerAdapter struct {
	dial         DialFunc
	pollInterval time.Duration
}

// NewDeployerAdapter creates a deployer that dials with ethclient
func NewDeployerAdapter() *DeployerAdapter {
	return NewDeployerAdapterWithDialer(func(ctx context.Context, rpcURL string) (Backend, error) {
		return ethclient.DialContext(ctx, rpcURL)
	}, 2*time.Second)
}

// NewDeployerAdapterWithDialer creates a deployer with a custom backend
func NewDeployerAdapterWithDialer(dial DialFunc, pollInterval time.Duration) *DeployerAdapter {
	return &DeployerAdapter{dial: dial, pollInterval: pollInterval}
}

// Execute builds, signs and sends the contract creation transaction. With
// req.DryRun it returns after gas estimation.
func (d *DeployerAdapter) Execute(ctx context.Context, req usecase.ExecuteDeploymentRequest) (*domain.DeploymentReceipt, error) {
	client, err := d.dial(ctx, req.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	// Verify chain ID matches
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if req.Profile.ChainID != 0 && chainID.Uint64() != req.Profile.ChainID {
		return nil, fmt.Errorf("%w: %s expects %d, node reports %d",
			domain.ErrChainMismatch, req.Profile.Name, req.Profile.ChainID, chainID.Uint64())
	}

	from := crypto.PubkeyToAddress(req.Signer.PublicKey)
	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	gasPrice := new(big.Int).SetUint64(req.Profile.GasPrice)
	if req.Profile.GasPrice == 0 {
		if gasPrice, err = client.SuggestGasPrice(ctx); err != nil {
			return nil, fmt.Errorf("get gas price: %w", err)
		}
	}

	data := append(append([]byte(nil), req.Bytecode...), req.Spec.EncodedArgs()...)
	result := &domain.DeploymentReceipt{
		From:            from,
		ContractAddress: crypto.CreateAddress(from, nonce),
		DryRun:          req.DryRun,
	}

	if req.DryRun || !req.Profile.SkipDryRun {
		estimate, err := client.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			GasPrice: gasPrice,
			Value:    big.NewInt(0),
			Data:     data,
		})
		if err != nil {
			return nil, fmt.Errorf("estimate gas: %w", err)
		}
		result.GasEstimate = estimate
		if estimate > req.Profile.Gas {
			return nil, fmt.Errorf("estimated gas %d exceeds the configured limit %d for %s",
				estimate, req.Profile.Gas, req.Profile.Name)
		}
	}
	if req.DryRun {
		return result, nil
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      req.Profile.Gas,
		Value:    big.NewInt(0),
		Data:     data,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), req.Signer)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	result.TxHash = signedTx.Hash()

	slog.Info("transaction submitted, waiting for confirmation",
		"network", req.Profile.Name,
		"tx_hash", signedTx.Hash().Hex(),
		"gas_limit", req.Profile.Gas,
		"gas_price", gasPrice.String(),
	)

	receipt, err := d.waitForReceipt(ctx, client, signedTx.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", signedTx.Hash().Hex())
	}

	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	result.GasUsed = receipt.GasUsed
	if receipt.ContractAddress != (common.Address{}) {
		result.ContractAddress = receipt.ContractAddress
	}
	return result, nil
}

// waitForReceipt polls until the transaction is mined or ctx is done.
func (d *DeployerAdapter) waitForReceipt(ctx context.Context, client Backend, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timeout waiting for transaction %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentExecutor = (*DeployerAdapter)(nil)
