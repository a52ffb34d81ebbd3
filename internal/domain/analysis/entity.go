package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is a saved match report. Records are append-only: they can be
// listed, read and deleted but never edited.
type Analysis struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ResumeID      *uuid.UUID
	ApplicationID *uuid.UUID
	Matched       []string
	Missing       []string
	MatchRate     string
	SavedAt       time.Time
}
