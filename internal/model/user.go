package model

import (
	"math"
	"time"
)

type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Pregnancy status values stored on a profile.
const (
	PregnancyStatusNotPregnant   = "not_pregnant"
	PregnancyStatusPregnant      = "pregnant"
	PregnancyStatusPostpartum    = "postpartum"
	PregnancyStatusNotApplicable = "not_applicable"
)

// Profile holds the health data that personalizes assistant answers and
// the dashboard. Everything derivable (BMI, trimester) is computed on
// read, never stored.
type Profile struct {
	UserID             int
	Age                *int
	Gender             string
	HeightCm           *float64
	WeightKg           *float64
	Profession         string
	Location           string
	PregnancyStatus    string
	PregnancyWeeks     *int
	DueDate            *time.Time
	PreferredLanguage  string
	EmailNotifications bool
	DisclaimerAccepted bool
	ProfileCompleted   bool
	UpdatedAt          time.Time
}

// BMI returns weight/(height m)^2 rounded to 2 decimals, or false when
// height or weight is missing.
func (p *Profile) BMI() (float64, bool) {
	if p.HeightCm == nil || p.WeightKg == nil || *p.HeightCm == 0 {
		return 0, false
	}
	heightM := *p.HeightCm / 100
	bmi := *p.WeightKg / (heightM * heightM)
	return math.Round(bmi*100) / 100, true
}

// BMICategory returns the WHO-style category label, or "" when BMI is
// unavailable.
func (p *Profile) BMICategory() string {
	bmi, ok := p.BMI()
	if !ok {
		return ""
	}
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Trimester returns 1..3 for pregnant users with a known week, 0 otherwise.
// Weeks 1-13 are the first trimester, 14-26 the second, 27+ the third.
func (p *Profile) Trimester() int {
	if p.PregnancyStatus != PregnancyStatusPregnant || p.PregnancyWeeks == nil || *p.PregnancyWeeks == 0 {
		return 0
	}
	switch weeks := *p.PregnancyWeeks; {
	case weeks <= 13:
		return 1
	case weeks <= 26:
		return 2
	default:
		return 3
	}
}

// CompletionPercentage reports how much of the profile is filled in.
func (p *Profile) CompletionPercentage() int {
	filled := 0
	total := 6
	if p.Age != nil {
		filled++
	}
	if p.Gender != "" && p.Gender != "N" {
		filled++
	}
	if p.HeightCm != nil {
		filled++
	}
	if p.WeightKg != nil {
		filled++
	}
	if p.Profession != "" {
		filled++
	}
	if p.Location != "" {
		filled++
	}
	return int(math.Round(float64(filled) / float64(total) * 100))
}

type DisclaimerAcceptance struct {
	ID         int
	UserID     int
	Text       string
	IPAddress  string
	AcceptedAt time.Time
}
