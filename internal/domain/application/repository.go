package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("application not found")

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

// Repository scopes every call to the owning user. Rows owned by someone
// else are reported as ErrNotFound.
type Repository interface {
	Create(ctx context.Context, a Application) (Application, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]Application, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Application, error)
	Update(ctx context.Context, a Application) (Application, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
