package model

import "time"

type GrowthRecord struct {
	ID                  int
	ChildID             int
	MeasuredOn          time.Time
	WeightKg            float64
	HeightCm            float64
	HeadCircumferenceCm *float64
	MeasuredBy          string
	Notes               string
	CreatedAt           time.Time
}

type Medication struct {
	ID            int
	ChildID       int
	Name          string
	Dosage        string
	Frequency     string
	StartDate     time.Time
	EndDate       *time.Time
	PrescribedFor string
	PrescribedBy  string
	Instructions  string
	IsActive      bool
	CreatedAt     time.Time
}
