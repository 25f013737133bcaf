package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		heightCm float64
		weightKg float64
		wantBMI  float64
		wantCat  string
	}{
		{"normal weight", 165, 60, 22.04, "Normal weight"},
		{"underweight", 170, 50, 17.3, "Underweight"},
		{"overweight", 160, 70, 27.34, "Overweight"},
		{"obese", 155, 80, 33.3, "Obese"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BMI(tt.heightCm, tt.weightKg)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantBMI, result.BMI, 0.01)
			assert.Equal(t, tt.wantCat, result.Category)
		})
	}

	t.Run("rejects non-positive inputs", func(t *testing.T) {
		_, err := BMI(0, 60)
		assert.Error(t, err)
		_, err = BMI(165, -1)
		assert.Error(t, err)
	})
}

func TestDueDate(t *testing.T) {
	lmp := day(2024, time.March, 1)

	t.Run("28 day cycle", func(t *testing.T) {
		result, err := DueDate(lmp, 28)
		require.NoError(t, err)
		assert.Equal(t, lmp.AddDate(0, 0, 280), result.EstimatedDueDate)
		assert.Equal(t, day(2024, time.March, 15), result.ConceptionDate)
		assert.Equal(t, lmp.AddDate(0, 0, 84), result.Trimester1End)
		assert.Equal(t, lmp.AddDate(0, 0, 182), result.Trimester2End)
	})

	t.Run("longer cycle shifts dates", func(t *testing.T) {
		result, err := DueDate(lmp, 32)
		require.NoError(t, err)
		assert.Equal(t, lmp.AddDate(0, 0, 284), result.EstimatedDueDate)
		assert.Equal(t, lmp.AddDate(0, 0, 18), result.ConceptionDate)
	})

	t.Run("rejects implausible cycle", func(t *testing.T) {
		_, err := DueDate(lmp, 10)
		assert.Error(t, err)
	})
}

func TestOvulation(t *testing.T) {
	lmp := day(2024, time.March, 1)

	result, err := Ovulation(lmp, 30)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 31), result.NextPeriod)
	assert.Equal(t, day(2024, time.March, 17), result.OvulationDate)
	assert.Equal(t, day(2024, time.March, 12), result.FertileStart)
	assert.Equal(t, day(2024, time.March, 18), result.FertileEnd)
}

func TestPregnancyWeightGain(t *testing.T) {
	t.Run("healthy gain", func(t *testing.T) {
		result, err := PregnancyWeightGain(55, 60, 20)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, result.GainKg, 0.001)
		assert.Equal(t, "Weight gain is healthy.", result.Message)
	})

	t.Run("excessive gain", func(t *testing.T) {
		result, err := PregnancyWeightGain(55, 68, 20)
		require.NoError(t, err)
		assert.Equal(t, "Weight gain is higher than expected.", result.Message)
	})

	t.Run("weight loss", func(t *testing.T) {
		result, err := PregnancyWeightGain(60, 58, 10)
		require.NoError(t, err)
		assert.Equal(t, "Weight loss should be discussed with a doctor.", result.Message)
	})

	t.Run("rejects out-of-range week", func(t *testing.T) {
		_, err := PregnancyWeightGain(55, 60, 0)
		assert.Error(t, err)
	})
}
