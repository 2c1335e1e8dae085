package store

import (
	"context"
	"errors"
	"fmt"

	"daysquare/internal/config"
	"daysquare/internal/types"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no service has the requested id
var ErrNotFound = errors.New("service not found")

// Store persists registered services
type Store interface {
	Migrate(ctx context.Context) error
	CreateService(ctx context.Context, service *types.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*types.Service, error)
	ListServices(ctx context.Context) ([]types.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Open returns the store configured by cfg
func Open(ctx context.Context, cfg config.Database) (Store, error) {
	if cfg.Type == "memory" {
		return NewMemory(), nil
	}
	s, err := OpenSQL(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return s, nil
}
