package dto

import (
	"encoding/json"
	"time"

	"bahikhata/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is one change-history record.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	OldData   json.RawMessage `json:"oldData,omitempty"`
	NewData   json.RawMessage `json:"newData,omitempty"`
	UserID    *string         `json:"userId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FromAuditEntries converts audit entries for the API.
func FromAuditEntries(entries []postgres.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			OldData:   e.OldData,
			NewData:   e.NewData,
			CreatedAt: e.CreatedAt,
		}
		if e.UserID != nil {
			uid := e.UserID.String()
			resp.UserID = &uid
		}
		out = append(out, resp)
	}
	return out
}
