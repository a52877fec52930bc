package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/sahilm/fuzzy"
)

// ResolveDeploymentParams contains parameters for resolving a deployment
type ResolveDeploymentParams struct {
	Network string
	// RequireArtifact turns a missing compiled artifact into an error instead
	// of falling back to the profile's declaration order.
	RequireArtifact bool
}

// ResolveDeploymentResult contains the resolved spec and what it was built from
type ResolveDeploymentResult struct {
	Spec     *domain.DeploymentSpec
	Profile  *domain.NetworkProfile
	Contract *domain.ContractInterface // nil when no artifact was found
}

// ResolveDeployment turns a network name into the constructor arguments of
// the deployed contract. It has no side effects.
type ResolveDeployment struct {
	config    *config.RuntimeConfig
	profiles  ProfileSource
	artifacts ArtifactLoader
	encoder   ConstructorEncoder
}

// NewResolveDeployment creates a new ResolveDeployment use case
func NewResolveDeployment(
	cfg *config.RuntimeConfig,
	profiles ProfileSource,
	artifacts ArtifactLoader,
	encoder ConstructorEncoder,
) *ResolveDeployment {
	return &ResolveDeployment{
		config:    cfg,
		profiles:  profiles,
		artifacts: artifacts,
		encoder:   encoder,
	}
}

// Run executes the use case
func (uc *ResolveDeployment) Run(ctx context.Context, params ResolveDeploymentParams) (*ResolveDeploymentResult, error) {
	profile, err := uc.profiles.Lookup(params.Network)
	if err != nil {
		return nil, withSuggestion(err)
	}

	for _, p := range profile.Params {
		if err := domain.ValidateParameter(profile.Name, p); err != nil {
			return nil, err
		}
	}

	contract := uc.config.Contract.Name
	iface, err := uc.artifacts.Load(ctx, contract)
	if err != nil {
		if params.RequireArtifact || !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to load contract artifact: %w", err)
		}
		slog.Debug("no compiled artifact, using declaration order", "contract", contract, "error", err)
		iface = nil
		if want := uc.config.Contract.Arity; want > 0 && len(profile.Params) != want {
			return nil, arityMismatch(profile, contract, want)
		}
	}

	args, err := orderArguments(profile, iface)
	if err != nil {
		return nil, err
	}

	encoded, err := uc.encoder.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	return &ResolveDeploymentResult{
		Spec:     domain.NewDeploymentSpec(profile.Name, profile.ChainID, contract, args, encoded, iface != nil),
		Profile:  profile,
		Contract: iface,
	}, nil
}

// orderArguments lays the profile parameters out in constructor order. When
// the artifact names its inputs parameters are matched by name, otherwise
// the declaration order is kept.
func orderArguments(profile *domain.NetworkProfile, iface *domain.ContractInterface) ([]domain.Argument, error) {
	if iface == nil {
		args := make([]domain.Argument, 0, len(profile.Params))
		for _, p := range profile.Params {
			args = append(args, domain.Argument{Name: p.Name, Type: p.ParamType(), Value: p.Value})
		}
		return args, nil
	}

	if len(profile.Params) != iface.Arity() {
		return nil, arityMismatch(profile, iface.Name, iface.Arity())
	}

	ordered := profile.Params
	if iface.NamedInputs() {
		byName := make(map[string]domain.Parameter, len(profile.Params))
		for _, p := range profile.Params {
			key := normalizeParamName(p.Name)
			if _, dup := byName[key]; dup {
				return nil, &domain.InvalidParameterError{
					Network: profile.Name,
					Field:   p.Name,
					Reason:  "declared more than once",
				}
			}
			byName[key] = p
		}
		ordered = make([]domain.Parameter, 0, len(iface.Inputs))
		for _, in := range iface.Inputs {
			p, ok := byName[normalizeParamName(in.Name)]
			if !ok {
				return nil, &domain.InvalidParameterError{
					Network: profile.Name,
					Field:   in.Name,
					Reason:  "constructor input has no matching profile parameter",
				}
			}
			ordered = append(ordered, p)
		}
	}

	args := make([]domain.Argument, 0, len(ordered))
	for i, p := range ordered {
		want := iface.Inputs[i].Type
		if p.ParamType() != want {
			return nil, &domain.InvalidParameterError{
				Network: profile.Name,
				Field:   p.Name,
				Value:   p.ParamType(),
				Reason:  "constructor expects " + want,
			}
		}
		args = append(args, domain.Argument{Name: p.Name, Type: want, Value: p.Value})
	}
	return args, nil
}

func arityMismatch(profile *domain.NetworkProfile, contract string, want int) error {
	return &domain.InvalidParameterError{
		Network: profile.Name,
		Field:   "constructor",
		Value:   fmt.Sprintf("%d", len(profile.Params)),
		Reason:  fmt.Sprintf("%s takes %d arguments, profile declares %d", contract, want, len(profile.Params)),
	}
}

// normalizeParamName lets `_ethPriceOracle` and `ethPriceOracleAddress`
// match a profile parameter called `ethPriceOracle`.
func normalizeParamName(name string) string {
	n := strings.ToLower(strings.TrimLeft(name, "_"))
	if trimmed := strings.TrimSuffix(n, "address"); trimmed != "" {
		n = trimmed
	}
	return n
}

// withSuggestion adds the closest known network name to an unknown network error.
func withSuggestion(err error) error {
	var unknown *domain.UnknownNetworkError
	if !errors.As(err, &unknown) || unknown.Suggestion != "" {
		return err
	}
	suggested := *unknown
	suggested.Suggestion = SuggestNetwork(unknown.Name, unknown.Known)
	return &suggested
}

// SuggestNetwork returns the best fuzzy match for name among known, or "".
func SuggestNetwork(name string, known []string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(strings.ToLower(name), known)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
