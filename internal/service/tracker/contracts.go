package tracker

import (
	"context"

	"swasthyam/internal/model"
)

// ChildStore resolves children scoped to their owning parent.
type ChildStore interface {
	FindByID(ctx context.Context, id, parentID int) (*model.Child, error)
}

// CatalogSource provides the immutable schedule catalog. The service
// fetches a fresh snapshot per reconcile call rather than holding catalog
// state.
type CatalogSource interface {
	ListVaccineSchedules(ctx context.Context) ([]model.VaccineSchedule, error)
	ListMilestones(ctx context.Context) ([]model.Milestone, error)
}

// RecordStore persists per-child tracking records.
type RecordStore interface {
	ExistingScheduleIDs(ctx context.Context, childID int) ([]int, error)
	ExistingMilestoneIDs(ctx context.Context, childID int) ([]int, error)
	InsertMissingVaccinations(ctx context.Context, childID int, scheduleIDs []int) (int, error)
	InsertMissingMilestones(ctx context.Context, childID int, milestoneIDs []int) (int, error)

	ListVaccinations(ctx context.Context, childID int) ([]model.VaccinationRecord, error)
	GetVaccination(ctx context.Context, recordID, childID int) (*model.VaccinationRecord, error)
	UpdateVaccinationCompletion(ctx context.Context, rec *model.VaccinationRecord) error

	ListMilestoneRecords(ctx context.Context, childID int) ([]model.MilestoneRecord, error)
	GetMilestoneRecord(ctx context.Context, recordID, childID int) (*model.MilestoneRecord, error)
	UpdateMilestoneAchievement(ctx context.Context, rec *model.MilestoneRecord) error
}

// EventPublisher emits reminder events for the external notifier. A nil
// publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// OnceGuard suppresses redundant reconcile runs on hot read paths. It is
// advisory only; the database uniqueness constraint stays authoritative.
type OnceGuard interface {
	AcquireOnce(ctx context.Context, operation string, id int) bool
	Release(ctx context.Context, operation string, id int)
}
