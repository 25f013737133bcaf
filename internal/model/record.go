package model

import "time"

// Tracking record statuses derived from completion state and child age.
type RecordStatus string

const (
	StatusCompleted RecordStatus = "completed"
	StatusDue       RecordStatus = "due"
	StatusUpcoming  RecordStatus = "upcoming"
)

// VaccinationRecord links one child to one vaccine schedule entry. At most
// one record exists per (child, schedule) pair; once created it is only
// mutated in place, never recreated.
type VaccinationRecord struct {
	ID               int
	ChildID          int
	ScheduleID       int
	IsCompleted      bool
	AdministeredDate *time.Time
	AdministeredBy   string
	BatchNumber      string
	HadReaction      bool
	ReactionDetails  string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined catalog fields, populated on list reads.
	VaccineName string
	AgeInMonths int
	DoseNumber  int
	IsMandatory bool
}

// MilestoneRecord links one child to one milestone catalog entry, with the
// same uniqueness and lifecycle rules as VaccinationRecord.
type MilestoneRecord struct {
	ID           int
	ChildID      int
	MilestoneID  int
	Achieved     bool
	AchievedDate *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined catalog fields.
	Title            string
	Category         string
	TypicalAgeMonths int
}
