package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListVaccineSchedules returns the full vaccine catalog ordered by target
// age, ties broken by dose number.
func (r *CatalogRepository) ListVaccineSchedules(ctx context.Context) ([]model.VaccineSchedule, error) {
	query := `
        SELECT id, vaccine_name, description, age_in_months, dose_number,
               is_mandatory, protects_against
        FROM vaccine_schedules
        ORDER BY age_in_months, dose_number
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.VaccineSchedule
	for rows.Next() {
		var s model.VaccineSchedule
		if err := rows.Scan(
			&s.ID, &s.VaccineName, &s.Description, &s.AgeInMonths,
			&s.DoseNumber, &s.IsMandatory, &s.ProtectsAgainst,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// ListMilestones returns the full milestone catalog ordered by typical
// age, ties broken by category.
func (r *CatalogRepository) ListMilestones(ctx context.Context) ([]model.Milestone, error) {
	query := `
        SELECT id, category, title, description, typical_age_months
        FROM milestones
        ORDER BY typical_age_months, category
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.Category, &m.Title, &m.Description, &m.TypicalAgeMonths); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// UpsertVaccineSchedule inserts a catalog entry if its name is new,
// leaving existing rows untouched so reseeding is safe.
func (r *CatalogRepository) UpsertVaccineSchedule(ctx context.Context, s *model.VaccineSchedule) error {
	query := `
        INSERT INTO vaccine_schedules (vaccine_name, description, age_in_months,
                                       dose_number, is_mandatory, protects_against)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (vaccine_name) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query,
		s.VaccineName, s.Description, s.AgeInMonths,
		s.DoseNumber, s.IsMandatory, s.ProtectsAgainst,
	)
	return err
}

// UpsertMilestone inserts a milestone if its title is new.
func (r *CatalogRepository) UpsertMilestone(ctx context.Context, m *model.Milestone) error {
	query := `
        INSERT INTO milestones (category, title, description, typical_age_months)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (title) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, m.Category, m.Title, m.Description, m.TypicalAgeMonths)
	return err
}
