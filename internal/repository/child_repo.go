package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type ChildRepository struct {
	db *pgxpool.Pool
}

func NewChildRepository(db *pgxpool.Pool) *ChildRepository {
	return &ChildRepository{db: db}
}

// Create inserts a new child for the given parent.
func (r *ChildRepository) Create(ctx context.Context, c *model.Child) error {
	query := `
        INSERT INTO children (parent_id, name, gender, date_of_birth,
                              birth_weight_kg, birth_height_cm, blood_group,
                              allergies, medical_conditions, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		c.ParentID, c.Name, c.Gender, c.DateOfBirth,
		c.BirthWeightKg, c.BirthHeightCm, c.BloodGroup,
		c.Allergies, c.MedicalConditions,
	).Scan(&c.ID, &c.CreatedAt)
}

// FindByID returns a child only when it belongs to parentID. A miss on
// either condition is ErrNotFound so existence never leaks across users.
func (r *ChildRepository) FindByID(ctx context.Context, id, parentID int) (*model.Child, error) {
	query := `
        SELECT id, parent_id, name, gender, date_of_birth, birth_weight_kg,
               birth_height_cm, blood_group, allergies, medical_conditions,
               created_at, updated_at
        FROM children
        WHERE id = $1 AND parent_id = $2
    `
	var c model.Child
	err := r.db.QueryRow(ctx, query, id, parentID).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Gender, &c.DateOfBirth,
		&c.BirthWeightKg, &c.BirthHeightCm, &c.BloodGroup,
		&c.Allergies, &c.MedicalConditions, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByParent returns all children of a parent, youngest last.
func (r *ChildRepository) ListByParent(ctx context.Context, parentID int) ([]model.Child, error) {
	query := `
        SELECT id, parent_id, name, gender, date_of_birth, birth_weight_kg,
               birth_height_cm, blood_group, allergies, medical_conditions,
               created_at, updated_at
        FROM children
        WHERE parent_id = $1
        ORDER BY date_of_birth
    `
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		var c model.Child
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.Name, &c.Gender, &c.DateOfBirth,
			&c.BirthWeightKg, &c.BirthHeightCm, &c.BloodGroup,
			&c.Allergies, &c.MedicalConditions, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

// Update writes the mutable child fields, scoped to the owning parent.
func (r *ChildRepository) Update(ctx context.Context, c *model.Child) error {
	query := `
        UPDATE children
        SET name = $3, gender = $4, date_of_birth = $5, birth_weight_kg = $6,
            birth_height_cm = $7, blood_group = $8, allergies = $9,
            medical_conditions = $10, updated_at = NOW()
        WHERE id = $1 AND parent_id = $2
    `
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.ParentID, c.Name, c.Gender, c.DateOfBirth,
		c.BirthWeightKg, c.BirthHeightCm, c.BloodGroup,
		c.Allergies, c.MedicalConditions,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a child; tracking, growth and medication rows go with it
// via ON DELETE CASCADE.
func (r *ChildRepository) Delete(ctx context.Context, id, parentID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM children WHERE id = $1 AND parent_id = $2`, id, parentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
