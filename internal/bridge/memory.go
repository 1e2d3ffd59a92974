package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-process RetriggerRepo.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[string][]uuid.UUID
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]uuid.UUID)}
}

func (m *MemoryRepo) LoadRetriggers(_ context.Context) (map[string][]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]uuid.UUID, len(m.data))
	for id, ids := range m.data {
		out[id] = append([]uuid.UUID(nil), ids...)
	}
	return out, nil
}

func (m *MemoryRepo) SaveRetriggers(_ context.Context, alarmID string, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[alarmID] = append([]uuid.UUID(nil), ids...)
	return nil
}

func (m *MemoryRepo) DeleteRetriggers(_ context.Context, alarmID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, alarmID)
	return nil
}
