package config

import (
	"sort"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// ProfileTable holds every registration of every network. It is built once
// at startup and never modified; lookups hand out clones.
type ProfileTable struct {
	registrations map[string][]*domain.NetworkProfile
	names         []string
}

// NewProfileTable builds the table from decoded deploy files. Registrations
// with identical content are collapsed into one; divergent ones are kept so
// that Lookup can report the conflict.
func NewProfileTable(files []LoadedDeployFile) *ProfileTable {
	t := &ProfileTable{registrations: make(map[string][]*domain.NetworkProfile)}
	fingerprints := make(map[string]map[string]bool)

	for _, f := range files {
		for _, name := range sortedMapKeys(f.File.Networks) {
			profile := profileFromConfig(name, f.Source, f.File.Networks[name])

			fp := profile.Fingerprint()
			if fingerprints[name] == nil {
				fingerprints[name] = make(map[string]bool)
			}
			if fingerprints[name][fp] {
				continue
			}
			fingerprints[name][fp] = true
			t.registrations[name] = append(t.registrations[name], profile)
		}
	}

	t.names = lo.Keys(t.registrations)
	sort.Strings(t.names)
	return t
}

// Networks returns the sorted names of every registered network.
func (t *ProfileTable) Networks() []string {
	return append([]string(nil), t.names...)
}

// Has reports whether the network has at least one registration.
func (t *ProfileTable) Has(name string) bool {
	_, ok := t.registrations[name]
	return ok
}

// Lookup returns the single profile registered for name. It fails with
// UnknownNetworkError when there is none and ConfigurationConflictError when
// two registrations disagree.
func (t *ProfileTable) Lookup(name string) (*domain.NetworkProfile, error) {
	regs, ok := t.registrations[name]
	if !ok {
		return nil, &domain.UnknownNetworkError{Name: name, Known: t.Networks()}
	}

	if len(regs) > 1 {
		var fields []string
		for _, other := range regs[1:] {
			fields = append(fields, domain.DiffFields(regs[0], other)...)
		}
		return nil, &domain.ConfigurationConflictError{
			Network: name,
			Sources: lo.Map(regs, func(p *domain.NetworkProfile, _ int) string { return p.Source }),
			Fields:  lo.Uniq(fields),
		}
	}

	return regs[0].Clone(), nil
}

// Registrations returns clones of every registration of name.
func (t *ProfileTable) Registrations(name string) []*domain.NetworkProfile {
	return lo.Map(t.registrations[name], func(p *domain.NetworkProfile, _ int) *domain.NetworkProfile {
		return p.Clone()
	})
}

func profileFromConfig(name, source string, nc config.NetworkConfig) *domain.NetworkProfile {
	gas := nc.Gas
	if gas == 0 {
		gas = config.DefaultGasLimit
	}
	rpcURL := nc.RPCURL
	if rpcURL == "" {
		rpcURL = "${" + GenerateEnvVarName(name) + "}"
	}
	return &domain.NetworkProfile{
		Name:       name,
		ChainID:    nc.ChainID,
		RPCURL:     rpcURL,
		ForkURL:    nc.ForkURL,
		Gas:        gas,
		GasPrice:   nc.GasPrice,
		SkipDryRun: nc.SkipDryRun,
		Params:     append([]domain.Parameter(nil), nc.Params...),
		Source:     source,
	}
}

// sortedMapKeys returns the keys of a map sorted alphabetically.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
