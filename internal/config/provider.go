package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DataDirName is the per-project state directory
const DataDirName = ".deri"

// ProvideProject loads the deploy files for Wire dependency injection
func ProvideProject(v *viper.Viper) (*Project, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		if projectRoot, err = FindProjectRoot(); err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	LoadEnvFiles(projectRoot)

	project, err := LoadProject(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load deploy config: %w", err)
	}
	return project, nil
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper, project *Project) (*config.RuntimeConfig, error) {
	contract, err := MergeContract(project.Files)
	if err != nil {
		return nil, err
	}
	credentials, err := MergeCredentials(project.Files)
	if err != nil {
		return nil, err
	}

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = filepath.Join(project.Root, DataDirName)
	}

	return &config.RuntimeConfig{
		ProjectRoot:    project.Root,
		DataDir:        dataDir,
		Network:        v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
		Contract:       contract,
		Credentials:    credentials,
		Sources:        project.Sources(),
	}, nil
}

// ProvideProfileTable builds the immutable network profile table
func ProvideProfileTable(project *Project) *ProfileTable {
	return NewProfileTable(project.Files)
}

// LoadEnvFiles loads .env and .env.local without overriding variables that
// are already set in the process environment.
func LoadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("failed to load env file", "file", envFile, "error", err)
		}
	}
}

// FindProjectRoot walks up from the current directory to find deploy.toml or
// deploy.d/. Without either the current directory is used with the built-in
// profiles.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, DeployFileName)); err == nil {
			return dir, nil
		}
		if info, err := os.Stat(filepath.Join(dir, DeployDirName)); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("DERI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
