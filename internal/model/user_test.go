package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func TestProfileBMI(t *testing.T) {
	p := &Profile{HeightCm: floatPtr(165), WeightKg: floatPtr(60)}
	bmi, ok := p.BMI()
	assert.True(t, ok)
	assert.InDelta(t, 22.04, bmi, 0.001)
	assert.Equal(t, "Normal weight", p.BMICategory())

	t.Run("missing measurements", func(t *testing.T) {
		p := &Profile{HeightCm: floatPtr(165)}
		_, ok := p.BMI()
		assert.False(t, ok)
		assert.Empty(t, p.BMICategory())
	})

	t.Run("zero height", func(t *testing.T) {
		p := &Profile{HeightCm: floatPtr(0), WeightKg: floatPtr(60)}
		_, ok := p.BMI()
		assert.False(t, ok)
	})
}

func TestProfileTrimester(t *testing.T) {
	tests := []struct {
		name   string
		status string
		weeks  *int
		want   int
	}{
		{"week 8 first", PregnancyStatusPregnant, intPtr(8), 1},
		{"week 13 still first", PregnancyStatusPregnant, intPtr(13), 1},
		{"week 14 second", PregnancyStatusPregnant, intPtr(14), 2},
		{"week 27 third", PregnancyStatusPregnant, intPtr(27), 3},
		{"not pregnant", PregnancyStatusNotPregnant, intPtr(20), 0},
		{"pregnant without weeks", PregnancyStatusPregnant, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{PregnancyStatus: tt.status, PregnancyWeeks: tt.weeks}
			assert.Equal(t, tt.want, p.Trimester())
		})
	}
}

func TestProfileCompletionPercentage(t *testing.T) {
	empty := &Profile{}
	assert.Equal(t, 0, empty.CompletionPercentage())

	half := &Profile{Age: intPtr(28), Gender: "F", HeightCm: floatPtr(165)}
	assert.Equal(t, 50, half.CompletionPercentage())

	full := &Profile{
		Age: intPtr(28), Gender: "F", HeightCm: floatPtr(165),
		WeightKg: floatPtr(60), Profession: "teacher", Location: "Pune",
	}
	assert.Equal(t, 100, full.CompletionPercentage())
}
