package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	dashboardDomain "github.com/davicafu/teamhub/internal/dashboard/domain"
)

var ErrNoSnapshots = errors.New("no hay snapshots guardados")

// JSONSnapshotStorage guarda los snapshots de informes en un fichero JSON, en orden de alta.
type JSONSnapshotStorage struct {
	filePath string
	mu       sync.Mutex
}

func NewJSONSnapshotStorage(filePath string) *JSONSnapshotStorage {
	return &JSONSnapshotStorage{filePath: filePath}
}

// Save añade el snapshot al final del fichero, creándolo si no existe.
func (s *JSONSnapshotStorage) Save(ctx context.Context, snap dashboardDomain.ReportSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps, err := s.readFile()
	if err != nil {
		return err
	}
	snaps = append(snaps, snap)

	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o644)
}

func (s *JSONSnapshotStorage) GetAll(ctx context.Context) ([]dashboardDomain.ReportSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readFile()
}

func (s *JSONSnapshotStorage) Latest(ctx context.Context) (dashboardDomain.ReportSnapshot, error) {
	snaps, err := s.GetAll(ctx)
	if err != nil {
		return dashboardDomain.ReportSnapshot{}, err
	}
	if len(snaps) == 0 {
		return dashboardDomain.ReportSnapshot{}, ErrNoSnapshots
	}
	return snaps[len(snaps)-1], nil
}

// readFile no toma el mutex. Fichero ausente o vacío = lista vacía.
func (s *JSONSnapshotStorage) readFile() ([]dashboardDomain.ReportSnapshot, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []dashboardDomain.ReportSnapshot{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []dashboardDomain.ReportSnapshot{}, nil
	}

	var snaps []dashboardDomain.ReportSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}
