package model

import (
	"fmt"
	"time"
)

type Child struct {
	ID                int
	ParentID          int
	Name              string
	Gender            string
	DateOfBirth       time.Time
	BirthWeightKg     *float64
	BirthHeightCm     *float64
	BloodGroup        string
	Allergies         string
	MedicalConditions string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AgeInMonths computes (today.year-dob.year)*12 + (today.month-dob.month),
// ignoring the day of month. A child whose day-of-month birthday has not
// yet arrived this month is still counted as having completed the month.
// This truncation is deliberate and pinned by tests; downstream status
// derivation depends on it staying exactly this way.
func (c *Child) AgeInMonths(today time.Time) int {
	months := (today.Year() - c.DateOfBirth.Year()) * 12
	months += int(today.Month()) - int(c.DateOfBirth.Month())
	return months
}

// AgeDisplay renders a human-readable age like "7 months" or
// "2 years 3 months".
func (c *Child) AgeDisplay(today time.Time) string {
	months := c.AgeInMonths(today)
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	remaining := months % 12
	if remaining == 0 {
		return fmt.Sprintf("%d years", years)
	}
	return fmt.Sprintf("%d years %d months", years, remaining)
}
