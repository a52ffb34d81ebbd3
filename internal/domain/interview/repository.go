package interview

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("interview not found")

type Repository interface {
	Create(ctx context.Context, iv Interview) (Interview, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Interview, error)
	ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]Interview, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Interview, error)
	Update(ctx context.Context, iv Interview) (Interview, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
