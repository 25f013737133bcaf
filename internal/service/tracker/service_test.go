package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/mq"
	"swasthyam/internal/repository"
)

type mockChildStore struct {
	findByIDFn func(ctx context.Context, id, parentID int) (*model.Child, error)
}

func (m *mockChildStore) FindByID(ctx context.Context, id, parentID int) (*model.Child, error) {
	return m.findByIDFn(ctx, id, parentID)
}

type mockCatalog struct {
	schedules  []model.VaccineSchedule
	milestones []model.Milestone
}

func (m *mockCatalog) ListVaccineSchedules(ctx context.Context) ([]model.VaccineSchedule, error) {
	return m.schedules, nil
}

func (m *mockCatalog) ListMilestones(ctx context.Context) ([]model.Milestone, error) {
	return m.milestones, nil
}

// mockRecordStore keeps per-child record state in memory and enforces the
// same uniqueness the database constraint does.
type mockRecordStore struct {
	vaccinations     []model.VaccinationRecord
	milestoneRecords []model.MilestoneRecord
	nextID           int

	updatedVaccinations []model.VaccinationRecord
	updatedMilestones   []model.MilestoneRecord
}

func (m *mockRecordStore) ExistingScheduleIDs(ctx context.Context, childID int) ([]int, error) {
	var ids []int
	for _, r := range m.vaccinations {
		if r.ChildID == childID {
			ids = append(ids, r.ScheduleID)
		}
	}
	return ids, nil
}

func (m *mockRecordStore) ExistingMilestoneIDs(ctx context.Context, childID int) ([]int, error) {
	var ids []int
	for _, r := range m.milestoneRecords {
		if r.ChildID == childID {
			ids = append(ids, r.MilestoneID)
		}
	}
	return ids, nil
}

func (m *mockRecordStore) InsertMissingVaccinations(ctx context.Context, childID int, scheduleIDs []int) (int, error) {
	created := 0
	for _, id := range scheduleIDs {
		exists := false
		for _, r := range m.vaccinations {
			if r.ChildID == childID && r.ScheduleID == id {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		m.nextID++
		m.vaccinations = append(m.vaccinations, model.VaccinationRecord{
			ID: m.nextID, ChildID: childID, ScheduleID: id,
		})
		created++
	}
	return created, nil
}

func (m *mockRecordStore) InsertMissingMilestones(ctx context.Context, childID int, milestoneIDs []int) (int, error) {
	created := 0
	for _, id := range milestoneIDs {
		exists := false
		for _, r := range m.milestoneRecords {
			if r.ChildID == childID && r.MilestoneID == id {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		m.nextID++
		m.milestoneRecords = append(m.milestoneRecords, model.MilestoneRecord{
			ID: m.nextID, ChildID: childID, MilestoneID: id,
		})
		created++
	}
	return created, nil
}

func (m *mockRecordStore) ListVaccinations(ctx context.Context, childID int) ([]model.VaccinationRecord, error) {
	var out []model.VaccinationRecord
	for _, r := range m.vaccinations {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecordStore) GetVaccination(ctx context.Context, recordID, childID int) (*model.VaccinationRecord, error) {
	for _, r := range m.vaccinations {
		if r.ID == recordID && r.ChildID == childID {
			rec := r
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockRecordStore) UpdateVaccinationCompletion(ctx context.Context, rec *model.VaccinationRecord) error {
	for i, r := range m.vaccinations {
		if r.ID == rec.ID {
			m.vaccinations[i] = *rec
		}
	}
	m.updatedVaccinations = append(m.updatedVaccinations, *rec)
	return nil
}

func (m *mockRecordStore) ListMilestoneRecords(ctx context.Context, childID int) ([]model.MilestoneRecord, error) {
	var out []model.MilestoneRecord
	for _, r := range m.milestoneRecords {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecordStore) GetMilestoneRecord(ctx context.Context, recordID, childID int) (*model.MilestoneRecord, error) {
	for _, r := range m.milestoneRecords {
		if r.ID == recordID && r.ChildID == childID {
			rec := r
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockRecordStore) UpdateMilestoneAchievement(ctx context.Context, rec *model.MilestoneRecord) error {
	for i, r := range m.milestoneRecords {
		if r.ID == rec.ID {
			m.milestoneRecords[i] = *rec
		}
	}
	m.updatedMilestones = append(m.updatedMilestones, *rec)
	return nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	return nil
}

func fullCatalog() *mockCatalog {
	c := &mockCatalog{}
	for i := 1; i <= 10; i++ {
		c.schedules = append(c.schedules, model.VaccineSchedule{ID: i})
	}
	for i := 1; i <= 8; i++ {
		c.milestones = append(c.milestones, model.Milestone{ID: i})
	}
	return c
}

func newTestService(catalog *mockCatalog, records *mockRecordStore, child *model.Child, events EventPublisher) *Service {
	children := &mockChildStore{
		findByIDFn: func(ctx context.Context, id, parentID int) (*model.Child, error) {
			if child != nil && child.ID == id && child.ParentID == parentID {
				return child, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewService(children, catalog, records, events, nil, zap.NewNop())
	svc.now = func() time.Time { return date(2024, time.July, 20) }
	return svc
}

func TestReconcileProvisionsFullCatalog(t *testing.T) {
	records := &mockRecordStore{}
	svc := newTestService(fullCatalog(), records, nil, nil)

	vacc, mile, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, vacc)
	assert.Equal(t, 8, mile)
	assert.Len(t, records.vaccinations, 10)
	assert.Len(t, records.milestoneRecords, 8)
}

func TestReconcileIsIdempotent(t *testing.T) {
	records := &mockRecordStore{}
	svc := newTestService(fullCatalog(), records, nil, nil)

	_, _, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)

	vacc, mile, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, vacc)
	assert.Zero(t, mile)
	assert.Len(t, records.vaccinations, 10)
	assert.Len(t, records.milestoneRecords, 8)
}

func TestReconcileFillsCatalogGap(t *testing.T) {
	catalog := fullCatalog()
	records := &mockRecordStore{}
	svc := newTestService(catalog, records, nil, nil)

	_, _, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)

	// Mark one record completed, then grow the catalog by one entry.
	records.vaccinations[0].IsCompleted = true
	catalog.schedules = append(catalog.schedules, model.VaccineSchedule{ID: 11})

	vacc, mile, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, vacc)
	assert.Zero(t, mile)
	assert.Len(t, records.vaccinations, 11)

	// Existing completion state is untouched by the gap fill.
	assert.True(t, records.vaccinations[0].IsCompleted)
}

func TestVaccinationOverviewDerivesStatuses(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{
		vaccinations: []model.VaccinationRecord{
			{ID: 1, ChildID: 1, ScheduleID: 1, IsCompleted: true, AgeInMonths: 0},
			{ID: 2, ChildID: 1, ScheduleID: 2, AgeInMonths: 6},
			{ID: 3, ChildID: 1, ScheduleID: 3, AgeInMonths: 9},
		},
	}
	catalog := &mockCatalog{
		schedules: []model.VaccineSchedule{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	svc := newTestService(catalog, records, child, nil)

	// Age on 2024-07-20 is 6 months.
	overview, err := svc.VaccinationOverview(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, overview.AgeInMonths)
	require.Len(t, overview.Items, 3)

	assert.Len(t, overview.Completed, 1)
	assert.Len(t, overview.Due, 1)
	assert.Len(t, overview.Upcoming, 1)
	assert.Equal(t, 2, overview.Due[0].Record.ID)
	assert.Equal(t, 3, overview.Upcoming[0].Record.ID)
}

func TestVaccinationOverviewCountsWholeDays(t *testing.T) {
	// Due date is dob + 180 days = 2024-07-21.
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 23)}
	records := &mockRecordStore{
		vaccinations: []model.VaccinationRecord{
			{ID: 1, ChildID: 1, ScheduleID: 1, AgeInMonths: 6},
		},
	}
	catalog := &mockCatalog{schedules: []model.VaccineSchedule{{ID: 1}}}
	svc := newTestService(catalog, records, child, nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.July, 20, 15, 30, 0, 0, time.UTC)
	}

	overview, err := svc.VaccinationOverview(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, overview.Items, 1)
	assert.Equal(t, 1, overview.Items[0].DaysUntilDue)
}

func TestVaccinationOverviewFailsClosedForForeignChild(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	svc := newTestService(fullCatalog(), &mockRecordStore{}, child, nil)

	_, err := svc.VaccinationOverview(context.Background(), 1, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOverviewSelfHealsMissingRecords(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{}
	svc := newTestService(fullCatalog(), records, child, nil)

	overview, err := svc.VaccinationOverview(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Len(t, overview.Items, 10)
}

func TestToggleVaccinationCompletes(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{
		vaccinations: []model.VaccinationRecord{
			{ID: 5, ChildID: 1, ScheduleID: 2, VaccineName: "Measles-1"},
		},
	}
	events := &mockPublisher{}
	svc := newTestService(&mockCatalog{}, records, child, events)

	rec, err := svc.ToggleVaccination(context.Background(), 1, 7, 5, ToggleVaccinationInput{
		AdministeredBy: "Dr. Rao",
		BatchNumber:    "B-42",
	})
	require.NoError(t, err)
	assert.True(t, rec.IsCompleted)
	require.NotNil(t, rec.AdministeredDate)
	assert.Equal(t, date(2024, time.July, 20), *rec.AdministeredDate)
	assert.Equal(t, "Dr. Rao", rec.AdministeredBy)
	assert.Equal(t, []string{mq.RoutingKeyVaccinationCompleted}, events.published)
}

func TestToggleVaccinationReopensAndClears(t *testing.T) {
	administered := date(2024, time.July, 1)
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{
		vaccinations: []model.VaccinationRecord{
			{
				ID: 5, ChildID: 1, ScheduleID: 2, IsCompleted: true,
				AdministeredDate: &administered, AdministeredBy: "Dr. Rao",
			},
		},
	}
	events := &mockPublisher{}
	svc := newTestService(&mockCatalog{}, records, child, events)

	rec, err := svc.ToggleVaccination(context.Background(), 1, 7, 5, ToggleVaccinationInput{})
	require.NoError(t, err)
	assert.False(t, rec.IsCompleted)
	assert.Nil(t, rec.AdministeredDate)
	assert.Empty(t, rec.AdministeredBy)
	assert.Equal(t, []string{mq.RoutingKeyVaccinationReopened}, events.published)
}

func TestSetMilestoneAchievement(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{
		milestoneRecords: []model.MilestoneRecord{
			{ID: 3, ChildID: 1, MilestoneID: 1, Title: "Social Smile"},
		},
	}
	events := &mockPublisher{}
	svc := newTestService(&mockCatalog{}, records, child, events)

	rec, err := svc.SetMilestoneAchievement(context.Background(), 1, 7, 3, true, "smiled at grandma")
	require.NoError(t, err)
	assert.True(t, rec.Achieved)
	require.NotNil(t, rec.AchievedDate)
	assert.Equal(t, "smiled at grandma", rec.Notes)
	assert.Equal(t, []string{mq.RoutingKeyMilestoneAchieved}, events.published)

	rec, err = svc.SetMilestoneAchievement(context.Background(), 1, 7, 3, false, "")
	require.NoError(t, err)
	assert.False(t, rec.Achieved)
	assert.Nil(t, rec.AchievedDate)
	assert.Empty(t, rec.Notes)

	// Unmarking publishes nothing.
	assert.Len(t, events.published, 1)
}

func TestMilestoneOverviewGroupsByCategory(t *testing.T) {
	child := &model.Child{ID: 1, ParentID: 7, DateOfBirth: date(2024, time.January, 15)}
	records := &mockRecordStore{
		milestoneRecords: []model.MilestoneRecord{
			{ID: 1, ChildID: 1, MilestoneID: 1, Achieved: true, Category: model.MilestoneCategoryMotor, TypicalAgeMonths: 4},
			{ID: 2, ChildID: 1, MilestoneID: 2, Category: model.MilestoneCategoryMotor, TypicalAgeMonths: 6},
			{ID: 3, ChildID: 1, MilestoneID: 3, Category: model.MilestoneCategorySocial, TypicalAgeMonths: 9},
		},
	}
	catalog := &mockCatalog{
		milestones: []model.Milestone{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	svc := newTestService(catalog, records, child, nil)

	overview, err := svc.MilestoneOverview(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.Total)
	assert.Equal(t, 1, overview.Achieved)
	assert.Len(t, overview.ByCategory[model.MilestoneCategoryMotor], 2)
	assert.Len(t, overview.ByCategory[model.MilestoneCategorySocial], 1)

	due := overview.ByCategory[model.MilestoneCategoryMotor][1]
	assert.Equal(t, model.StatusDue, due.Status)
	upcoming := overview.ByCategory[model.MilestoneCategorySocial][0]
	assert.Equal(t, model.StatusUpcoming, upcoming.Status)
}
