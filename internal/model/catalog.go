package model

// VaccineSchedule is an immutable catalog entry of the immunization
// program. Rows are created by the seed command and read-only from the
// tracking path.
type VaccineSchedule struct {
	ID              int
	VaccineName     string
	Description     string
	AgeInMonths     int
	DoseNumber      int
	IsMandatory     bool
	ProtectsAgainst string
}

// Milestone categories.
const (
	MilestoneCategoryMotor     = "motor"
	MilestoneCategorySocial    = "social"
	MilestoneCategoryLanguage  = "language"
	MilestoneCategoryCognitive = "cognitive"
)

// Milestone is an immutable developmental milestone catalog entry.
type Milestone struct {
	ID               int
	Category         string
	Title            string
	Description      string
	TypicalAgeMonths int
}
