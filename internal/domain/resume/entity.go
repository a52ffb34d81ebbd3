package resume

import (
	"time"

	"github.com/google/uuid"
)

// Resume keeps the extracted qualifications text of an upload, never the
// original bytes.
type Resume struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	Qualifications string
	FileName       string
	ContentType    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
