package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
)

const (
	// DeployFileName is the primary project deploy file
	DeployFileName = "deploy.toml"
	// DeployDirName holds additional deploy files, merged in sorted order
	DeployDirName = "deploy.d"
	// BuiltinSource is the source name reported for the embedded defaults
	BuiltinSource = "(built-in)"
)

//go:embed defaults/deploy.toml
var builtinDeployFile []byte

// LoadedDeployFile is a decoded deploy file together with where it came from.
type LoadedDeployFile struct {
	Source string
	File   config.DeployFile
}

// Project is every deploy file found for a project root.
type Project struct {
	Root  string
	Files []LoadedDeployFile
}

// Sources returns the source names of the loaded files in load order.
func (p *Project) Sources() []string {
	sources := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		sources = append(sources, f.Source)
	}
	return sources
}

// LoadProject reads deploy.toml and deploy.d/*.toml under projectRoot. When
// neither exists the embedded defaults are used.
func LoadProject(projectRoot string) (*Project, error) {
	paths, err := deployFilePaths(projectRoot)
	if err != nil {
		return nil, err
	}

	project := &Project{Root: projectRoot}
	if len(paths) == 0 {
		file, err := DecodeDeployFile(BuiltinSource, builtinDeployFile)
		if err != nil {
			return nil, err
		}
		project.Files = append(project.Files, *file)
		return project, nil
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // project path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		source := path
		if rel, err := filepath.Rel(projectRoot, path); err == nil {
			source = rel
		}
		file, err := DecodeDeployFile(source, data)
		if err != nil {
			return nil, err
		}
		project.Files = append(project.Files, *file)
	}

	return project, nil
}

// DecodeDeployFile parses one deploy file. Unknown keys are rejected so a
// misspelled parameter table cannot silently drop an argument.
func DecodeDeployFile(source string, data []byte) (*LoadedDeployFile, error) {
	var file config.DeployFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("failed to parse %s: unknown keys: %s", source, strings.Join(keys, ", "))
	}

	return &LoadedDeployFile{Source: source, File: file}, nil
}

// MergeContract returns the [contract] section shared by all files. Files that
// leave it out inherit it; files that set a different one are a conflict.
func MergeContract(files []LoadedDeployFile) (config.ContractConfig, error) {
	var merged config.ContractConfig
	var from string
	for _, f := range files {
		c := f.File.Contract
		if c == (config.ContractConfig{}) {
			continue
		}
		if from == "" {
			merged, from = c, f.Source
			continue
		}
		if c != merged {
			return config.ContractConfig{}, fmt.Errorf("%w: [contract] differs between %s and %s",
				domain.ErrConfigurationConflict, from, f.Source)
		}
	}
	if merged.Name == "" {
		merged.Name = config.DefaultContractName
	}
	return merged, nil
}

// MergeCredentials returns the [credentials] section shared by all files.
func MergeCredentials(files []LoadedDeployFile) (config.CredentialsConfig, error) {
	var merged config.CredentialsConfig
	var from string
	for _, f := range files {
		c := f.File.Credentials
		if c == (config.CredentialsConfig{}) {
			continue
		}
		if from == "" {
			merged, from = c, f.Source
			continue
		}
		if c != merged {
			return config.CredentialsConfig{}, fmt.Errorf("%w: [credentials] differs between %s and %s",
				domain.ErrConfigurationConflict, from, f.Source)
		}
	}
	if merged.RPCAPIKeyEnv == "" {
		merged.RPCAPIKeyEnv = config.DefaultRPCAPIKeyEnv
	}
	if merged.SignerKeyEnv == "" {
		merged.SignerKeyEnv = config.DefaultSignerKeyEnv
	}
	return merged, nil
}

// deployFilePaths lists deploy.toml followed by deploy.d/*.toml, sorted.
func deployFilePaths(projectRoot string) ([]string, error) {
	var paths []string

	primary := filepath.Join(projectRoot, DeployFileName)
	if _, err := os.Stat(primary); err == nil {
		paths = append(paths, primary)
	}

	extra, err := filepath.Glob(filepath.Join(projectRoot, DeployDirName, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", DeployDirName, err)
	}
	sort.Strings(extra)

	return append(paths, extra...), nil
}
