package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("analysis not found")

type Repository interface {
	Append(ctx context.Context, a Analysis) (Analysis, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Analysis, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Analysis, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
