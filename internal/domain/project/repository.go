package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// Repository defines the interface for project persistence
type Repository interface {
	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindAll finds projects with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// Delete removes a project
	Delete(ctx context.Context, id uuid.UUID) error
}
