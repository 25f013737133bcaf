package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type GrowthRepository struct {
	db *pgxpool.Pool
}

func NewGrowthRepository(db *pgxpool.Pool) *GrowthRepository {
	return &GrowthRepository{db: db}
}

// Create inserts a growth measurement.
func (r *GrowthRepository) Create(ctx context.Context, g *model.GrowthRecord) error {
	query := `
        INSERT INTO growth_records (child_id, measured_on, weight_kg, height_cm,
                                    head_circumference_cm, measured_by, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		g.ChildID, g.MeasuredOn, g.WeightKg, g.HeightCm,
		g.HeadCircumferenceCm, g.MeasuredBy, g.Notes,
	).Scan(&g.ID)
}

// ListByChild returns measurements newest first.
func (r *GrowthRepository) ListByChild(ctx context.Context, childID int) ([]model.GrowthRecord, error) {
	query := `
        SELECT id, child_id, measured_on, weight_kg, height_cm,
               head_circumference_cm, measured_by, notes, created_at
        FROM growth_records
        WHERE child_id = $1
        ORDER BY measured_on DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.GrowthRecord
	for rows.Next() {
		var g model.GrowthRecord
		if err := rows.Scan(
			&g.ID, &g.ChildID, &g.MeasuredOn, &g.WeightKg, &g.HeightCm,
			&g.HeadCircumferenceCm, &g.MeasuredBy, &g.Notes, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, g)
	}
	return records, rows.Err()
}
