package tracker

import (
	"time"

	"swasthyam/internal/model"
)

// daysPerMonth is the fixed approximation used for due-date math. It is
// intentionally not calendar-accurate; the stored schedules were authored
// against this rule and tests pin it.
const daysPerMonth = 30

// DeriveStatus computes the presentation status of one tracking record.
// completed wins unconditionally; otherwise the record is due once the
// child's age in months has reached the catalog target.
func DeriveStatus(completed bool, ageInMonths, targetAgeMonths int) model.RecordStatus {
	if completed {
		return model.StatusCompleted
	}
	if ageInMonths >= targetAgeMonths {
		return model.StatusDue
	}
	return model.StatusUpcoming
}

// DueDate returns dob + targetAgeMonths*30 days.
func DueDate(dob time.Time, targetAgeMonths int) time.Time {
	return dob.AddDate(0, 0, targetAgeMonths*daysPerMonth)
}

// DaysUntilDue returns the whole days between today and the due date.
// Negative values mean the record is overdue by that many days.
func DaysUntilDue(dob time.Time, targetAgeMonths int, today time.Time) int {
	due := DueDate(dob, targetAgeMonths)
	return int(due.Sub(today).Hours() / 24)
}
