package interview

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPhone      Kind = "phone"
	KindVideo      Kind = "video"
	KindOnsite     Kind = "onsite"
	KindTechnical  Kind = "technical"
	KindBehavioral Kind = "behavioral"
	KindOther      Kind = "other"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPhone, KindVideo, KindOnsite, KindTechnical, KindBehavioral, KindOther:
		return true
	}
	return false
}

type Interview struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ApplicationID uuid.UUID
	ScheduledAt   time.Time
	Kind          Kind
	Location      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
