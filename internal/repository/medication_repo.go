package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type MedicationRepository struct {
	db *pgxpool.Pool
}

func NewMedicationRepository(db *pgxpool.Pool) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// Create inserts a medication record.
func (r *MedicationRepository) Create(ctx context.Context, m *model.Medication) error {
	query := `
        INSERT INTO medications (child_id, name, dosage, frequency, start_date,
                                 end_date, prescribed_for, prescribed_by,
                                 instructions, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		m.ChildID, m.Name, m.Dosage, m.Frequency, m.StartDate,
		m.EndDate, m.PrescribedFor, m.PrescribedBy,
		m.Instructions, m.IsActive,
	).Scan(&m.ID)
}

// ListByChild returns medications, most recently started first.
func (r *MedicationRepository) ListByChild(ctx context.Context, childID int) ([]model.Medication, error) {
	query := `
        SELECT id, child_id, name, dosage, frequency, start_date, end_date,
               prescribed_for, prescribed_by, instructions, is_active, created_at
        FROM medications
        WHERE child_id = $1
        ORDER BY start_date DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []model.Medication
	for rows.Next() {
		var m model.Medication
		if err := rows.Scan(
			&m.ID, &m.ChildID, &m.Name, &m.Dosage, &m.Frequency,
			&m.StartDate, &m.EndDate, &m.PrescribedFor, &m.PrescribedBy,
			&m.Instructions, &m.IsActive, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// Deactivate marks a medication as no longer active.
func (r *MedicationRepository) Deactivate(ctx context.Context, id, childID int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE medications SET is_active = FALSE, end_date = COALESCE(end_date, NOW()::date) WHERE id = $1 AND child_id = $2`,
		id, childID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
