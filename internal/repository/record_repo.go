package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
	"swasthyam/pkg/metrics"
)

type RecordRepository struct {
	db *pgxpool.Pool
}

func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{db: db}
}

// ExistingScheduleIDs returns the schedule ids the child already has
// vaccination records for.
func (r *RecordRepository) ExistingScheduleIDs(ctx context.Context, childID int) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT schedule_id FROM vaccination_records WHERE child_id = $1`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// ExistingMilestoneIDs returns the milestone ids the child already has
// records for.
func (r *RecordRepository) ExistingMilestoneIDs(ctx context.Context, childID int) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT milestone_id FROM milestone_records WHERE child_id = $1`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]int, error) {
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertMissingVaccinations batch-inserts default-state records for the
// given schedule ids. ON CONFLICT DO NOTHING makes a racing insert a
// no-op: an existing record's completion state is never overwritten.
// Returns the number of rows actually created.
func (r *RecordRepository) InsertMissingVaccinations(ctx context.Context, childID int, scheduleIDs []int) (int, error) {
	if len(scheduleIDs) == 0 {
		return 0, nil
	}

	start := time.Now()
	batch := &pgx.Batch{}
	for _, scheduleID := range scheduleIDs {
		batch.Queue(`
            INSERT INTO vaccination_records (child_id, schedule_id, created_at, updated_at)
            VALUES ($1, $2, NOW(), NOW())
            ON CONFLICT (child_id, schedule_id) DO NOTHING
        `, childID, scheduleID)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range scheduleIDs {
		tag, err := results.Exec()
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}

	metrics.RecordDBQueryDuration("batch_insert", "vaccination_records", time.Since(start))
	return created, nil
}

// InsertMissingMilestones is the milestone counterpart of
// InsertMissingVaccinations.
func (r *RecordRepository) InsertMissingMilestones(ctx context.Context, childID int, milestoneIDs []int) (int, error) {
	if len(milestoneIDs) == 0 {
		return 0, nil
	}

	start := time.Now()
	batch := &pgx.Batch{}
	for _, milestoneID := range milestoneIDs {
		batch.Queue(`
            INSERT INTO milestone_records (child_id, milestone_id, created_at, updated_at)
            VALUES ($1, $2, NOW(), NOW())
            ON CONFLICT (child_id, milestone_id) DO NOTHING
        `, childID, milestoneID)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range milestoneIDs {
		tag, err := results.Exec()
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}

	metrics.RecordDBQueryDuration("batch_insert", "milestone_records", time.Since(start))
	return created, nil
}

// ListVaccinations returns the child's vaccination records joined with
// their catalog entries, ordered by target age.
func (r *RecordRepository) ListVaccinations(ctx context.Context, childID int) ([]model.VaccinationRecord, error) {
	query := `
        SELECT vr.id, vr.child_id, vr.schedule_id, vr.is_completed,
               vr.administered_date, vr.administered_by, vr.batch_number,
               vr.had_reaction, vr.reaction_details, vr.notes,
               vr.created_at, vr.updated_at,
               vs.vaccine_name, vs.age_in_months, vs.dose_number, vs.is_mandatory
        FROM vaccination_records vr
        JOIN vaccine_schedules vs ON vs.id = vr.schedule_id
        WHERE vr.child_id = $1
        ORDER BY vs.age_in_months, vs.dose_number
    `
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.VaccinationRecord
	for rows.Next() {
		var rec model.VaccinationRecord
		if err := rows.Scan(
			&rec.ID, &rec.ChildID, &rec.ScheduleID, &rec.IsCompleted,
			&rec.AdministeredDate, &rec.AdministeredBy, &rec.BatchNumber,
			&rec.HadReaction, &rec.ReactionDetails, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.VaccineName, &rec.AgeInMonths, &rec.DoseNumber, &rec.IsMandatory,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetVaccination returns one record scoped to the child.
func (r *RecordRepository) GetVaccination(ctx context.Context, recordID, childID int) (*model.VaccinationRecord, error) {
	query := `
        SELECT vr.id, vr.child_id, vr.schedule_id, vr.is_completed,
               vr.administered_date, vr.administered_by, vr.batch_number,
               vr.had_reaction, vr.reaction_details, vr.notes,
               vr.created_at, vr.updated_at,
               vs.vaccine_name, vs.age_in_months, vs.dose_number, vs.is_mandatory
        FROM vaccination_records vr
        JOIN vaccine_schedules vs ON vs.id = vr.schedule_id
        WHERE vr.id = $1 AND vr.child_id = $2
    `
	var rec model.VaccinationRecord
	err := r.db.QueryRow(ctx, query, recordID, childID).Scan(
		&rec.ID, &rec.ChildID, &rec.ScheduleID, &rec.IsCompleted,
		&rec.AdministeredDate, &rec.AdministeredBy, &rec.BatchNumber,
		&rec.HadReaction, &rec.ReactionDetails, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.VaccineName, &rec.AgeInMonths, &rec.DoseNumber, &rec.IsMandatory,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateVaccinationCompletion writes the completion state of a record.
func (r *RecordRepository) UpdateVaccinationCompletion(ctx context.Context, rec *model.VaccinationRecord) error {
	query := `
        UPDATE vaccination_records
        SET is_completed = $3, administered_date = $4, administered_by = $5,
            batch_number = $6, had_reaction = $7, reaction_details = $8,
            notes = $9, updated_at = NOW()
        WHERE id = $1 AND child_id = $2
    `
	tag, err := r.db.Exec(ctx, query,
		rec.ID, rec.ChildID, rec.IsCompleted, rec.AdministeredDate,
		rec.AdministeredBy, rec.BatchNumber, rec.HadReaction,
		rec.ReactionDetails, rec.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMilestoneRecords returns the child's milestone records joined with
// their catalog entries, ordered by typical age.
func (r *RecordRepository) ListMilestoneRecords(ctx context.Context, childID int) ([]model.MilestoneRecord, error) {
	query := `
        SELECT mr.id, mr.child_id, mr.milestone_id, mr.achieved,
               mr.achieved_date, mr.notes, mr.created_at, mr.updated_at,
               m.title, m.category, m.typical_age_months
        FROM milestone_records mr
        JOIN milestones m ON m.id = mr.milestone_id
        WHERE mr.child_id = $1
        ORDER BY m.typical_age_months, m.category
    `
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.MilestoneRecord
	for rows.Next() {
		var rec model.MilestoneRecord
		if err := rows.Scan(
			&rec.ID, &rec.ChildID, &rec.MilestoneID, &rec.Achieved,
			&rec.AchievedDate, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.Title, &rec.Category, &rec.TypicalAgeMonths,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetMilestoneRecord returns one record scoped to the child.
func (r *RecordRepository) GetMilestoneRecord(ctx context.Context, recordID, childID int) (*model.MilestoneRecord, error) {
	query := `
        SELECT mr.id, mr.child_id, mr.milestone_id, mr.achieved,
               mr.achieved_date, mr.notes, mr.created_at, mr.updated_at,
               m.title, m.category, m.typical_age_months
        FROM milestone_records mr
        JOIN milestones m ON m.id = mr.milestone_id
        WHERE mr.id = $1 AND mr.child_id = $2
    `
	var rec model.MilestoneRecord
	err := r.db.QueryRow(ctx, query, recordID, childID).Scan(
		&rec.ID, &rec.ChildID, &rec.MilestoneID, &rec.Achieved,
		&rec.AchievedDate, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Title, &rec.Category, &rec.TypicalAgeMonths,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateMilestoneAchievement writes the achievement state of a record.
func (r *RecordRepository) UpdateMilestoneAchievement(ctx context.Context, rec *model.MilestoneRecord) error {
	query := `
        UPDATE milestone_records
        SET achieved = $3, achieved_date = $4, notes = $5, updated_at = NOW()
        WHERE id = $1 AND child_id = $2
    `
	tag, err := r.db.Exec(ctx, query,
		rec.ID, rec.ChildID, rec.Achieved, rec.AchievedDate, rec.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
