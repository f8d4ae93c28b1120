package service

import (
	"encoding/json"
	"log"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
)

// Auditor is the fire-and-forget notification sink. It persists an
// audit row and broadcasts it over the websocket hub; failures are
// logged and never propagate to the workflow call that triggered the
// event.
type Auditor struct {
	repo repository.AuditRepository
	hub  *ws.Hub
}

func NewAuditor(repo repository.AuditRepository, hub *ws.Hub) *Auditor {
	return &Auditor{repo: repo, hub: hub}
}

// Record captures a workflow mutation. Before/after are marshalled to
// JSON snapshots; nil means "no snapshot on that side".
func (a *Auditor) Record(actor, action, entityType, entityID string, before, after interface{}) {
	if a == nil {
		return
	}
	go func() {
		event := &model.AuditEvent{
			Actor:      actor,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Before:     marshalSnapshot(before),
			After:      marshalSnapshot(after),
		}
		if err := a.repo.Create(event); err != nil {
			log.Printf("audit: persist %s %s/%s: %v", action, entityType, entityID, err)
		}

		if a.hub == nil {
			return
		}
		payload, err := json.Marshal(map[string]interface{}{
			"type":        "audit",
			"actor":       actor,
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		})
		if err != nil {
			return
		}
		a.hub.Publish(payload)
	}()
}

func marshalSnapshot(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
