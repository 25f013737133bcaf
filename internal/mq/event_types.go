package mq

import "time"

// Routing keys consumed by the external notifier.
const (
	RoutingKeyVaccinationCompleted = "vaccination.completed"
	RoutingKeyVaccinationReopened  = "vaccination.reopened"
	RoutingKeyMilestoneAchieved    = "milestone.achieved"
)

type VaccinationEventPayload struct {
	RecordID    int       `json:"record_id"`
	ChildID     int       `json:"child_id"`
	ParentID    int       `json:"parent_id"`
	VaccineName string    `json:"vaccine_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type MilestoneEventPayload struct {
	RecordID   int       `json:"record_id"`
	ChildID    int       `json:"child_id"`
	ParentID   int       `json:"parent_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
