package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"daysquare/internal/types"

	"github.com/google/uuid"
)

// Memory is a process-local Store
type Memory struct {
	mu       sync.RWMutex
	services map[uuid.UUID]types.Service
	now      func() time.Time
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		services: make(map[uuid.UUID]types.Service),
		now:      time.Now,
	}
}

func (m *Memory) Migrate(ctx context.Context) error {
	return nil
}

func (m *Memory) CreateService(ctx context.Context, service *types.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = m.now().UTC()
	}
	m.services[service.ID] = *service
	return nil
}

func (m *Memory) GetService(ctx context.Context, id uuid.UUID) (*types.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	service, ok := m.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &service, nil
}

func (m *Memory) ListServices(ctx context.Context) ([]types.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	services := make([]types.Service, 0, len(m.services))
	for _, s := range m.services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].CreatedAt.Equal(services[j].CreatedAt) {
			return services[i].ID.String() < services[j].ID.String()
		}
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}

func (m *Memory) DeleteService(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.services[id]; !ok {
		return ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
