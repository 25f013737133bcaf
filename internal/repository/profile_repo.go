package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the profile for a user.
func (r *ProfileRepository) Get(ctx context.Context, userID int) (*model.Profile, error) {
	query := `
        SELECT user_id, age, gender, height_cm, weight_kg, profession, location,
               pregnancy_status, pregnancy_weeks, due_date, preferred_language,
               email_notifications, disclaimer_accepted, profile_completed, updated_at
        FROM user_profiles
        WHERE user_id = $1
    `
	var p model.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Age, &p.Gender, &p.HeightCm, &p.WeightKg, &p.Profession,
		&p.Location, &p.PregnancyStatus, &p.PregnancyWeeks, &p.DueDate,
		&p.PreferredLanguage, &p.EmailNotifications, &p.DisclaimerAccepted,
		&p.ProfileCompleted, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes the mutable profile fields.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
        UPDATE user_profiles
        SET age = $2, gender = $3, height_cm = $4, weight_kg = $5,
            profession = $6, location = $7, pregnancy_status = $8,
            pregnancy_weeks = $9, due_date = $10, preferred_language = $11,
            email_notifications = $12, disclaimer_accepted = $13,
            profile_completed = $14, updated_at = NOW()
        WHERE user_id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		p.UserID, p.Age, p.Gender, p.HeightCm, p.WeightKg, p.Profession,
		p.Location, p.PregnancyStatus, p.PregnancyWeeks, p.DueDate,
		p.PreferredLanguage, p.EmailNotifications, p.DisclaimerAccepted,
		p.ProfileCompleted,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordDisclaimer stores a disclaimer acceptance for compliance.
func (r *ProfileRepository) RecordDisclaimer(ctx context.Context, d *model.DisclaimerAcceptance) error {
	query := `
        INSERT INTO disclaimer_acceptances (user_id, text, ip_address, accepted_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, d.UserID, d.Text, d.IPAddress).Scan(&d.ID)
}
