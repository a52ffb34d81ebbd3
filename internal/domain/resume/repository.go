package resume

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resume not found")

type Repository interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	List(ctx context.Context, userID uuid.UUID) ([]Resume, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Resume, error)
	Update(ctx context.Context, r Resume) (Resume, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
