package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeChecklistNonCompliant = "checklist.noncompliant"
	EventTypeChecklistCompleted    = "checklist.completed"
	EventTypeChecklistValidated    = "checklist.validated"
)

// ChecklistNonCompliantEvent fires after a completion commits with at least
// one negative answer. Alert dispatch hangs off this event so mail problems
// never touch the checklist transaction.
type ChecklistNonCompliantEvent struct {
	BaseEvent
	InstanceID   int64  `json:"instance_id"`
	ExternalID   string `json:"external_id"`
	TemplateName string `json:"template_name"`
	SectorID     int64  `json:"sector_id"`
	FilledBy     int64  `json:"filled_by"`
}

func NewChecklistNonCompliantEvent(instanceID int64, externalID, templateName string, sectorID, filledBy int64) *ChecklistNonCompliantEvent {
	return &ChecklistNonCompliantEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeChecklistNonCompliant,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"instance_id":   instanceID,
				"external_id":   externalID,
				"template_name": templateName,
				"sector_id":     sectorID,
				"filled_by":     filledBy,
			},
		},
		InstanceID:   instanceID,
		ExternalID:   externalID,
		TemplateName: templateName,
		SectorID:     sectorID,
		FilledBy:     filledBy,
	}
}

type ChecklistCompletedEvent struct {
	BaseEvent
	InstanceID int64  `json:"instance_id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

func NewChecklistCompletedEvent(instanceID int64, externalID, status string) *ChecklistCompletedEvent {
	return &ChecklistCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeChecklistCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"instance_id": instanceID,
				"external_id": externalID,
				"status":      status,
			},
		},
		InstanceID: instanceID,
		ExternalID: externalID,
		Status:     status,
	}
}

type ChecklistValidatedEvent struct {
	BaseEvent
	InstanceID  int64  `json:"instance_id"`
	ExternalID  string `json:"external_id"`
	ValidatorID int64  `json:"validator_id"`
	Outcome     string `json:"outcome"`
}

func NewChecklistValidatedEvent(instanceID int64, externalID string, validatorID int64, outcome string) *ChecklistValidatedEvent {
	return &ChecklistValidatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeChecklistValidated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"instance_id":  instanceID,
				"external_id":  externalID,
				"validator_id": validatorID,
				"outcome":      outcome,
			},
		},
		InstanceID:  instanceID,
		ExternalID:  externalID,
		ValidatorID: validatorID,
		Outcome:     outcome,
	}
}
