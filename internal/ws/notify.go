package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventAnalysisSaved      = "analysis_saved"
	EventApplicationUpdated = "application_updated"
	EventInterviewScheduled = "interview_scheduled"
)

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// NotifyUser pushes one event to every open connection of userID.
// Delivery is best effort.
func (h *Hub) NotifyUser(userID uuid.UUID, eventType string, data any) {
	if h == nil || eventType == "" {
		return
	}

	evt := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logf("WS notify marshal error | type=%s error=%v", eventType, err)
		return
	}

	h.SendToUser(userID, b)
}
