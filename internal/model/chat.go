package model

import (
	"time"

	"github.com/google/uuid"
)

// Chat answer sources.
const (
	AnswerSourceCanned   = "canned"
	AnswerSourceModel    = "model"
	AnswerSourceFallback = "fallback"
)

// ChatMessage stores one question/answer exchange together with the
// profile context at the time, so past advice stays interpretable after
// the profile changes.
type ChatMessage struct {
	ID          int
	UserID      int
	SessionID   uuid.UUID
	Question    string
	Answer      string
	Source      string
	AgeAtTime   *int
	WeeksAtTime *int
	Helpful     *bool
	CreatedAt   time.Time
}

type BMILog struct {
	ID        int
	UserID    int
	HeightCm  float64
	WeightKg  float64
	BMI       float64
	Category  string
	CreatedAt time.Time
}

type NutritionLog struct {
	ID        int
	UserID    int
	FoodName  string
	Calories  int
	ProteinG  int
	CarbsG    int
	FatsG     int
	LoggedOn  time.Time
	CreatedAt time.Time
}

// NutritionTotals is the aggregated intake for one day.
type NutritionTotals struct {
	Calories int
	ProteinG int
	CarbsG   int
	FatsG    int
}
