// Package calculator holds the pure health calculators. Nothing here
// touches storage; handlers persist the results they want to keep.
package calculator

import (
	"fmt"
	"math"
	"time"
)

// BMIResult is a computed body mass index with its category label.
type BMIResult struct {
	BMI      float64
	Category string
}

// BMI computes weight/(height m)^2 rounded to 2 decimals. Height is in
// centimeters.
func BMI(heightCm, weightKg float64) (BMIResult, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{}, fmt.Errorf("height and weight must be positive")
	}
	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*100) / 100

	var category string
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal weight"
	case bmi < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return BMIResult{BMI: bmi, Category: category}, nil
}

// DueDateResult is the set of pregnancy dates derived from the last
// menstrual period.
type DueDateResult struct {
	EstimatedDueDate time.Time
	ConceptionDate   time.Time
	Trimester1End    time.Time
	Trimester2End    time.Time
}

// DueDate applies Naegele's rule adjusted for cycle length: LMP plus 280
// days, shifted one day per day the cycle differs from 28.
func DueDate(lastPeriod time.Time, cycleLengthDays int) (DueDateResult, error) {
	if err := validateCycle(cycleLengthDays); err != nil {
		return DueDateResult{}, err
	}
	shift := cycleLengthDays - 28
	return DueDateResult{
		EstimatedDueDate: lastPeriod.AddDate(0, 0, 280+shift),
		ConceptionDate:   lastPeriod.AddDate(0, 0, 14+shift),
		Trimester1End:    lastPeriod.AddDate(0, 0, 12*7),
		Trimester2End:    lastPeriod.AddDate(0, 0, 26*7),
	}, nil
}

// OvulationResult is the predicted fertile window for one cycle.
type OvulationResult struct {
	OvulationDate time.Time
	FertileStart  time.Time
	FertileEnd    time.Time
	NextPeriod    time.Time
}

// Ovulation predicts ovulation 14 days before the next period, with a
// fertile window from 5 days before ovulation to 1 day after.
func Ovulation(lastPeriod time.Time, cycleLengthDays int) (OvulationResult, error) {
	if err := validateCycle(cycleLengthDays); err != nil {
		return OvulationResult{}, err
	}
	nextPeriod := lastPeriod.AddDate(0, 0, cycleLengthDays)
	ovulation := nextPeriod.AddDate(0, 0, -14)
	return OvulationResult{
		OvulationDate: ovulation,
		FertileStart:  ovulation.AddDate(0, 0, -5),
		FertileEnd:    ovulation.AddDate(0, 0, 1),
		NextPeriod:    nextPeriod,
	}, nil
}

// WeightGainResult is the assessment of pregnancy weight gain so far.
type WeightGainResult struct {
	GainKg  float64
	Message string
}

// PregnancyWeightGain compares actual gain against the rough half-kilo
// per week guideline.
func PregnancyWeightGain(preWeightKg, currentWeightKg float64, week int) (WeightGainResult, error) {
	if preWeightKg <= 0 || currentWeightKg <= 0 {
		return WeightGainResult{}, fmt.Errorf("weights must be positive")
	}
	if week < 1 || week > 42 {
		return WeightGainResult{}, fmt.Errorf("week must be between 1 and 42")
	}
	gain := math.Round((currentWeightKg-preWeightKg)*100) / 100

	var message string
	switch {
	case gain < 0:
		message = "Weight loss should be discussed with a doctor."
	case gain <= float64(week)*0.5:
		message = "Weight gain is healthy."
	default:
		message = "Weight gain is higher than expected."
	}
	return WeightGainResult{GainKg: gain, Message: message}, nil
}

func validateCycle(days int) error {
	if days < 21 || days > 45 {
		return fmt.Errorf("cycle length must be between 21 and 45 days")
	}
	return nil
}
