package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/mq"
	"swasthyam/pkg/metrics"
)

const reconcileOnceOp = "tracker_reconcile"

type Service struct {
	children ChildStore
	catalog  CatalogSource
	records  RecordStore
	events   EventPublisher
	once     OnceGuard
	logger   *zap.Logger

	now func() time.Time
}

func NewService(
	children ChildStore,
	catalog CatalogSource,
	records RecordStore,
	events EventPublisher,
	once OnceGuard,
	logger *zap.Logger,
) *Service {
	return &Service{
		children: children,
		catalog:  catalog,
		records:  records,
		events:   events,
		once:     once,
		logger:   logger,
		now:      time.Now,
	}
}

// Reconcile ensures the child has exactly one tracking record per catalog
// entry, creating any missing ones in their default incomplete state.
// Running it twice with an unchanged catalog creates nothing the second
// time; racing runs are resolved by the (child, entry) unique constraint,
// so an existing record's completion state is never touched.
func (s *Service) Reconcile(ctx context.Context, childID int) (createdVaccinations, createdMilestones int, err error) {
	schedules, err := s.catalog.ListVaccineSchedules(ctx)
	if err != nil {
		return 0, 0, err
	}
	existingSchedules, err := s.records.ExistingScheduleIDs(ctx, childID)
	if err != nil {
		return 0, 0, err
	}
	missing := missingIDs(scheduleIDs(schedules), existingSchedules)
	createdVaccinations, err = s.records.InsertMissingVaccinations(ctx, childID, missing)
	if err != nil {
		return createdVaccinations, 0, err
	}

	milestones, err := s.catalog.ListMilestones(ctx)
	if err != nil {
		return createdVaccinations, 0, err
	}
	existingMilestones, err := s.records.ExistingMilestoneIDs(ctx, childID)
	if err != nil {
		return createdVaccinations, 0, err
	}
	missing = missingIDs(milestoneIDs(milestones), existingMilestones)
	createdMilestones, err = s.records.InsertMissingMilestones(ctx, childID, missing)
	if err != nil {
		return createdVaccinations, createdMilestones, err
	}

	if createdVaccinations > 0 {
		metrics.IncrementRecordsProvisioned("vaccination", createdVaccinations)
	}
	if createdMilestones > 0 {
		metrics.IncrementRecordsProvisioned("milestone", createdMilestones)
	}
	if createdVaccinations > 0 || createdMilestones > 0 {
		s.logger.Info("Provisioned tracking records",
			zap.Int("child_id", childID),
			zap.Int("vaccinations", createdVaccinations),
			zap.Int("milestones", createdMilestones),
		)
	}
	return createdVaccinations, createdMilestones, nil
}

// reconcileOnRead self-heals missing records as a side effect of a read.
// The once-guard keeps hot dashboard reloads from re-running the diff;
// when the guarded run fails the lock is released so the next read tries
// again.
func (s *Service) reconcileOnRead(ctx context.Context, childID int) {
	if s.once != nil && !s.once.AcquireOnce(ctx, reconcileOnceOp, childID) {
		return
	}
	if _, _, err := s.Reconcile(ctx, childID); err != nil {
		s.logger.Warn("Reconcile on read failed", zap.Int("child_id", childID), zap.Error(err))
		if s.once != nil {
			s.once.Release(ctx, reconcileOnceOp, childID)
		}
	}
}

func scheduleIDs(schedules []model.VaccineSchedule) []int {
	ids := make([]int, len(schedules))
	for i, s := range schedules {
		ids[i] = s.ID
	}
	return ids
}

func milestoneIDs(milestones []model.Milestone) []int {
	ids := make([]int, len(milestones))
	for i, m := range milestones {
		ids[i] = m.ID
	}
	return ids
}

// missingIDs returns catalog ids with no existing record, preserving
// catalog order.
func missingIDs(catalog, existing []int) []int {
	seen := make(map[int]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	var missing []int
	for _, id := range catalog {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// VaccinationItem is one record with its derived presentation fields.
type VaccinationItem struct {
	Record       model.VaccinationRecord
	Status       model.RecordStatus
	DueDate      time.Time
	DaysUntilDue int
}

// VaccinationOverview is the typed view for the vaccine tracker page.
type VaccinationOverview struct {
	Child       *model.Child
	AgeInMonths int
	Items       []VaccinationItem
	Completed   []VaccinationItem
	Due         []VaccinationItem
	Upcoming    []VaccinationItem
}

// VaccinationOverview verifies ownership, self-heals missing records and
// returns all vaccination records with derived statuses.
func (s *Service) VaccinationOverview(ctx context.Context, childID, parentID int) (*VaccinationOverview, error) {
	child, err := s.children.FindByID(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}

	s.reconcileOnRead(ctx, childID)

	records, err := s.records.ListVaccinations(ctx, childID)
	if err != nil {
		return nil, err
	}

	// Truncate to midnight so days-until-due stays whole-day arithmetic
	// regardless of the time of day the page is loaded.
	today := dateOnly(s.now())
	ageMonths := child.AgeInMonths(today)

	overview := &VaccinationOverview{Child: child, AgeInMonths: ageMonths}
	for _, rec := range records {
		item := VaccinationItem{
			Record:       rec,
			Status:       DeriveStatus(rec.IsCompleted, ageMonths, rec.AgeInMonths),
			DueDate:      DueDate(child.DateOfBirth, rec.AgeInMonths),
			DaysUntilDue: DaysUntilDue(child.DateOfBirth, rec.AgeInMonths, today),
		}
		overview.Items = append(overview.Items, item)
		switch item.Status {
		case model.StatusCompleted:
			overview.Completed = append(overview.Completed, item)
		case model.StatusDue:
			overview.Due = append(overview.Due, item)
		default:
			overview.Upcoming = append(overview.Upcoming, item)
		}
	}
	return overview, nil
}

// MilestoneItem is one milestone record with derived fields.
type MilestoneItem struct {
	Record model.MilestoneRecord
	Status model.RecordStatus
}

// MilestoneOverview is the typed view for the milestone tracker page,
// grouped the way the page renders it.
type MilestoneOverview struct {
	Child       *model.Child
	AgeInMonths int
	ByCategory  map[string][]MilestoneItem
	Achieved    int
	Total       int
}

// MilestoneOverview verifies ownership, self-heals missing records and
// returns milestone records grouped by category.
func (s *Service) MilestoneOverview(ctx context.Context, childID, parentID int) (*MilestoneOverview, error) {
	child, err := s.children.FindByID(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}

	s.reconcileOnRead(ctx, childID)

	records, err := s.records.ListMilestoneRecords(ctx, childID)
	if err != nil {
		return nil, err
	}

	ageMonths := child.AgeInMonths(s.now())
	overview := &MilestoneOverview{
		Child:       child,
		AgeInMonths: ageMonths,
		ByCategory:  make(map[string][]MilestoneItem),
		Total:       len(records),
	}
	for _, rec := range records {
		item := MilestoneItem{
			Record: rec,
			Status: DeriveStatus(rec.Achieved, ageMonths, rec.TypicalAgeMonths),
		}
		overview.ByCategory[rec.Category] = append(overview.ByCategory[rec.Category], item)
		if rec.Achieved {
			overview.Achieved++
		}
	}
	return overview, nil
}

// ToggleVaccinationInput carries the optional administration details
// applied when a record flips to completed.
type ToggleVaccinationInput struct {
	AdministeredBy  string
	BatchNumber     string
	HadReaction     bool
	ReactionDetails string
	Notes           string
}

// ToggleVaccination flips the completion flag of one record. Completing
// stamps today's date and the administration details; un-completing
// clears them.
func (s *Service) ToggleVaccination(ctx context.Context, childID, parentID, recordID int, input ToggleVaccinationInput) (*model.VaccinationRecord, error) {
	child, err := s.children.FindByID(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.GetVaccination(ctx, recordID, childID)
	if err != nil {
		return nil, err
	}

	rec.IsCompleted = !rec.IsCompleted
	if rec.IsCompleted {
		today := dateOnly(s.now())
		rec.AdministeredDate = &today
		rec.AdministeredBy = input.AdministeredBy
		rec.BatchNumber = input.BatchNumber
		rec.HadReaction = input.HadReaction
		rec.ReactionDetails = input.ReactionDetails
		rec.Notes = input.Notes
	} else {
		rec.AdministeredDate = nil
		rec.AdministeredBy = ""
		rec.BatchNumber = ""
		rec.HadReaction = false
		rec.ReactionDetails = ""
	}

	if err := s.records.UpdateVaccinationCompletion(ctx, rec); err != nil {
		return nil, err
	}

	s.publishVaccinationEvent(child, rec)
	return rec, nil
}

// SetMilestoneAchievement marks or unmarks a milestone. Achieving stamps
// today's date and the caller's notes; unmarking clears both.
func (s *Service) SetMilestoneAchievement(ctx context.Context, childID, parentID, recordID int, achieved bool, notes string) (*model.MilestoneRecord, error) {
	child, err := s.children.FindByID(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.GetMilestoneRecord(ctx, recordID, childID)
	if err != nil {
		return nil, err
	}

	rec.Achieved = achieved
	if achieved {
		today := dateOnly(s.now())
		rec.AchievedDate = &today
		rec.Notes = notes
	} else {
		rec.AchievedDate = nil
		rec.Notes = ""
	}

	if err := s.records.UpdateMilestoneAchievement(ctx, rec); err != nil {
		return nil, err
	}

	if achieved && s.events != nil {
		payload := mq.MilestoneEventPayload{
			RecordID:   rec.ID,
			ChildID:    child.ID,
			ParentID:   child.ParentID,
			Title:      rec.Title,
			OccurredAt: s.now(),
		}
		if err := s.events.Publish(mq.RoutingKeyMilestoneAchieved, payload); err != nil {
			s.logger.Warn("Failed to publish milestone event", zap.Error(err))
		}
	}
	return rec, nil
}

func (s *Service) publishVaccinationEvent(child *model.Child, rec *model.VaccinationRecord) {
	if s.events == nil {
		return
	}
	routingKey := mq.RoutingKeyVaccinationCompleted
	if !rec.IsCompleted {
		routingKey = mq.RoutingKeyVaccinationReopened
	}
	payload := mq.VaccinationEventPayload{
		RecordID:    rec.ID,
		ChildID:     child.ID,
		ParentID:    child.ParentID,
		VaccineName: rec.VaccineName,
		OccurredAt:  s.now(),
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		s.logger.Warn("Failed to publish vaccination event", zap.Error(err))
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
