package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
)

// DeploymentsFile holds every recorded deployment, keyed by record ID
const DeploymentsFile = "deployments.json"

// FileRepository stores deployment records in a json file under the data dir
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*domain.DeploymentRecord
}

// NewFileRepository creates the data dir if needed and loads existing records
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dataDir, err)
	}

	m := &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[string]*domain.DeploymentRecord),
	}
	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load deployment records: %w", err)
	}
	return m, nil
}

// ProvideFileRepository creates the repository for Wire dependency injection
func ProvideFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

// RecordID identifies a record by network, chain and address.
func RecordID(record *domain.DeploymentRecord) string {
	return fmt.Sprintf("%s/%d/%s", record.Network, record.ChainID, strings.ToLower(record.Address))
}

// Save adds or replaces a record and writes the file.
func (m *FileRepository) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.deployments[RecordID(record)] = &copied

	if err := m.saveFile(); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// List returns copies of the records matching filter.
func (m *FileRepository) List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*domain.DeploymentRecord, 0, len(m.deployments))
	for _, r := range m.deployments {
		if filter.Network != "" && r.Network != filter.Network {
			continue
		}
		if filter.Contract != "" && r.Contract != filter.Contract {
			continue
		}
		copied := *r
		records = append(records, &copied)
	}
	return records, nil
}

func (m *FileRepository) path() string {
	return filepath.Join(m.dataDir, DeploymentsFile)
}

// load reads the records file; a missing file is an empty store
func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &m.deployments)
}

func (m *FileRepository) saveFile() error {
	data, err := json.MarshalIndent(m.deployments, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := m.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, m.path())
}

// Ensure the repository implements the interface
var _ usecase.DeploymentStore = (*FileRepository)(nil)
