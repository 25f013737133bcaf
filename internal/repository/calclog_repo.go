package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type CalcLogRepository struct {
	db *pgxpool.Pool
}

func NewCalcLogRepository(db *pgxpool.Pool) *CalcLogRepository {
	return &CalcLogRepository{db: db}
}

// CreateBMILog stores one BMI calculation.
func (r *CalcLogRepository) CreateBMILog(ctx context.Context, l *model.BMILog) error {
	query := `
        INSERT INTO bmi_logs (user_id, height_cm, weight_kg, bmi, category, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		l.UserID, l.HeightCm, l.WeightKg, l.BMI, l.Category,
	).Scan(&l.ID, &l.CreatedAt)
}

// ListRecentBMILogs returns the user's latest BMI calculations.
func (r *CalcLogRepository) ListRecentBMILogs(ctx context.Context, userID, limit int) ([]model.BMILog, error) {
	query := `
        SELECT id, user_id, height_cm, weight_kg, bmi, category, created_at
        FROM bmi_logs
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.BMILog
	for rows.Next() {
		var l model.BMILog
		if err := rows.Scan(&l.ID, &l.UserID, &l.HeightCm, &l.WeightKg, &l.BMI, &l.Category, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CreateNutritionLog stores one analyzed meal.
func (r *CalcLogRepository) CreateNutritionLog(ctx context.Context, l *model.NutritionLog) error {
	query := `
        INSERT INTO nutrition_logs (user_id, food_name, calories, protein_g,
                                    carbs_g, fats_g, logged_on, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		l.UserID, l.FoodName, l.Calories, l.ProteinG, l.CarbsG, l.FatsG, l.LoggedOn,
	).Scan(&l.ID, &l.CreatedAt)
}

// ListNutritionLogsByDay returns the meals logged on one day.
func (r *CalcLogRepository) ListNutritionLogsByDay(ctx context.Context, userID int, day time.Time) ([]model.NutritionLog, error) {
	query := `
        SELECT id, user_id, food_name, calories, protein_g, carbs_g, fats_g,
               logged_on, created_at
        FROM nutrition_logs
        WHERE user_id = $1 AND logged_on = $2
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.NutritionLog
	for rows.Next() {
		var l model.NutritionLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.FoodName, &l.Calories, &l.ProteinG,
			&l.CarbsG, &l.FatsG, &l.LoggedOn, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// NutritionTotalsByDay aggregates one day's intake.
func (r *CalcLogRepository) NutritionTotalsByDay(ctx context.Context, userID int, day time.Time) (*model.NutritionTotals, error) {
	query := `
        SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein_g), 0),
               COALESCE(SUM(carbs_g), 0), COALESCE(SUM(fats_g), 0)
        FROM nutrition_logs
        WHERE user_id = $1 AND logged_on = $2
    `
	var t model.NutritionTotals
	err := r.db.QueryRow(ctx, query, userID, day).Scan(&t.Calories, &t.ProteinG, &t.CarbsG, &t.FatsG)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
