package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/pkg/metrics"
)

// Completer is the model client. Implementations must return an error
// rather than an empty answer when the upstream is unusable.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ChatStore persists exchanges and ratings.
type ChatStore interface {
	Create(ctx context.Context, m *model.ChatMessage) error
	ListRecent(ctx context.Context, userID, limit int) ([]model.ChatMessage, error)
	SetHelpful(ctx context.Context, messageID, userID int, helpful bool) error
}

// ProfileSource supplies the profile used to personalize answers.
type ProfileSource interface {
	Get(ctx context.Context, userID int) (*model.Profile, error)
}

type Service struct {
	completer Completer
	chats     ChatStore
	profiles  ProfileSource
	logger    *zap.Logger
}

func NewService(completer Completer, chats ChatStore, profiles ProfileSource, logger *zap.Logger) *Service {
	return &Service{completer: completer, chats: chats, profiles: profiles, logger: logger}
}

// Answer is one resolved exchange.
type Answer struct {
	Message model.ChatMessage
	Source  string
}

// Ask resolves a question. Canned answers are checked first so small talk
// never costs a model call; only a question that actually reached the
// model can fall back, so one request never produces both a canned answer
// and the fallback. Every exchange is persisted with the profile context
// at the time.
func (s *Service) Ask(ctx context.Context, userID int, sessionID uuid.UUID, userName, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question must not be empty")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("Profile lookup failed, answering without context",
			zap.Int("user_id", userID), zap.Error(err))
		profile = nil
	}

	source := model.AnswerSourceCanned
	answer := cannedAnswer(question, userName)
	if answer == "" {
		answer, err = s.completer.Complete(ctx, buildSystemPrompt(profile), question)
		source = model.AnswerSourceModel
		if err != nil {
			s.logger.Warn("Assistant call failed, using fallback", zap.Error(err))
			answer = fallbackAnswer
			source = model.AnswerSourceFallback
		}
	}
	metrics.IncrementChatAnswer(source)

	msg := model.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Source:    source,
	}
	if profile != nil {
		msg.AgeAtTime = profile.Age
		msg.WeeksAtTime = profile.PregnancyWeeks
	}
	if err := s.chats.Create(ctx, &msg); err != nil {
		return nil, err
	}
	return &Answer{Message: msg, Source: source}, nil
}

// Rate records whether an answer helped.
func (s *Service) Rate(ctx context.Context, messageID, userID int, helpful bool) error {
	return s.chats.SetHelpful(ctx, messageID, userID, helpful)
}

// History returns the user's most recent exchanges, newest first.
func (s *Service) History(ctx context.Context, userID, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.chats.ListRecent(ctx, userID, limit)
}

// FoodAnalysis is the model's nutrition estimate for one food item.
type FoodAnalysis struct {
	FoodName string `json:"food_name"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatsG    int    `json:"fats_g"`
}

const foodPrompt = "You are a nutrition database. Reply with ONLY a JSON object, no prose, with keys food_name (string), calories, protein_g, carbs_g, fats_g (integers), estimating one standard serving of the food the user names."

// AnalyzeFood asks the model for a nutrition estimate. Unlike Ask there
// is no meaningful fallback; callers surface the error.
func (s *Service) AnalyzeFood(ctx context.Context, foodName string) (*FoodAnalysis, error) {
	raw, err := s.completer.Complete(ctx, foodPrompt, foodName)
	if err != nil {
		return nil, err
	}

	// Models sometimes wrap JSON in a code fence.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var analysis FoodAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("unexpected nutrition response: %w", err)
	}
	if analysis.FoodName == "" {
		analysis.FoodName = foodName
	}
	return &analysis, nil
}
