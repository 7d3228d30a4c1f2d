package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventJobsUpdated = "jobs_updated"

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	OrgID     string `json:"org_id"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// JobsUpdated broadcasts a jobs_updated event for orgID.
func (h *Hub) JobsUpdated(orgID, action string) {
	if h == nil {
		return
	}

	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		OrgID:     orgID,
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(orgID, b)
}
