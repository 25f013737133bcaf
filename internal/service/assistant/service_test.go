package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"swasthyam/internal/model"
)

type mockCompleter struct {
	completeFn func(ctx context.Context, systemPrompt, userMessage string) (string, error)
	calls      int
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m.calls++
	return m.completeFn(ctx, systemPrompt, userMessage)
}

type mockChatStore struct {
	created []model.ChatMessage
	rated   map[int]bool
}

func (m *mockChatStore) Create(ctx context.Context, msg *model.ChatMessage) error {
	msg.ID = len(m.created) + 1
	m.created = append(m.created, *msg)
	return nil
}

func (m *mockChatStore) ListRecent(ctx context.Context, userID, limit int) ([]model.ChatMessage, error) {
	return m.created, nil
}

func (m *mockChatStore) SetHelpful(ctx context.Context, messageID, userID int, helpful bool) error {
	if m.rated == nil {
		m.rated = map[int]bool{}
	}
	m.rated[messageID] = helpful
	return nil
}

type mockProfileSource struct {
	profile *model.Profile
}

func (m *mockProfileSource) Get(ctx context.Context, userID int) (*model.Profile, error) {
	return m.profile, nil
}

func intPtr(n int) *int { return &n }

func newAskService(completer *mockCompleter, profile *model.Profile) (*Service, *mockChatStore) {
	chats := &mockChatStore{}
	svc := NewService(completer, chats, &mockProfileSource{profile: profile}, zap.NewNop())
	return svc, chats
}

func TestAskCannedSkipsModel(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "model answer", nil
		},
	}
	svc, chats := newAskService(completer, &model.Profile{})

	answer, err := svc.Ask(context.Background(), 1, uuid.New(), "Asha", "Hello!")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSourceCanned, answer.Source)
	assert.Contains(t, answer.Message.Answer, "Namaste, Asha")
	assert.Zero(t, completer.calls)
	require.Len(t, chats.created, 1)
	assert.Equal(t, model.AnswerSourceCanned, chats.created[0].Source)
}

func TestAskEmergencyKeyword(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "model answer", nil
		},
	}
	svc, _ := newAskService(completer, &model.Profile{})

	answer, err := svc.Ask(context.Background(), 1, uuid.New(), "", "I have heavy bleeding since morning")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSourceCanned, answer.Source)
	assert.Contains(t, answer.Message.Answer, "102/108")
	assert.Zero(t, completer.calls)
}

func TestAskCallsModelWithProfileContext(t *testing.T) {
	var seenPrompt string
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			seenPrompt = systemPrompt
			return "Drink plenty of water. Consult your doctor.", nil
		},
	}
	profile := &model.Profile{
		PregnancyStatus: model.PregnancyStatusPregnant,
		PregnancyWeeks:  intPtr(22),
		Age:             intPtr(28),
	}
	svc, chats := newAskService(completer, profile)

	answer, err := svc.Ask(context.Background(), 1, uuid.New(), "", "What should I eat this week?")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSourceModel, answer.Source)
	assert.Contains(t, seenPrompt, "22 weeks pregnant")
	assert.Contains(t, seenPrompt, "User age: 28")

	require.Len(t, chats.created, 1)
	require.NotNil(t, chats.created[0].WeeksAtTime)
	assert.Equal(t, 22, *chats.created[0].WeeksAtTime)
}

func TestAskFallsBackOnModelFailure(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "", errors.New("upstream timeout")
		},
	}
	svc, chats := newAskService(completer, &model.Profile{})

	answer, err := svc.Ask(context.Background(), 1, uuid.New(), "", "What should I eat this week?")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSourceFallback, answer.Source)
	assert.Equal(t, fallbackAnswer, answer.Message.Answer)
	assert.Equal(t, 1, completer.calls)
	require.Len(t, chats.created, 1)
	assert.Equal(t, model.AnswerSourceFallback, chats.created[0].Source)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc, chats := newAskService(&mockCompleter{}, &model.Profile{})

	_, err := svc.Ask(context.Background(), 1, uuid.New(), "", "   ")
	assert.Error(t, err)
	assert.Empty(t, chats.created)
}

func TestNormalizeQuestion(t *testing.T) {
	assert.Equal(t, "hello", normalizeQuestion("  Hello!? "))
	assert.Equal(t, "thank you", normalizeQuestion("Thank You."))
	assert.Equal(t, "who are you", normalizeQuestion("who are you?"))
}

func TestCannedAnswerMatchesExactOnly(t *testing.T) {
	// Contains-matching is reserved for emergency keywords; ordinary
	// questions that merely mention a greeting go to the model.
	assert.Empty(t, cannedAnswer("hello doctor, what is a balanced diet", ""))
	assert.NotEmpty(t, cannedAnswer("hello", ""))
}

func TestAnalyzeFood(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "```json\n{\"food_name\":\"Banana\",\"calories\":105,\"protein_g\":1,\"carbs_g\":27,\"fats_g\":0}\n```", nil
		},
	}
	svc, _ := newAskService(completer, nil)

	analysis, err := svc.AnalyzeFood(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, "Banana", analysis.FoodName)
	assert.Equal(t, 105, analysis.Calories)
	assert.Equal(t, 27, analysis.CarbsG)
}

func TestAnalyzeFoodRejectsProse(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "A banana has roughly 105 calories.", nil
		},
	}
	svc, _ := newAskService(completer, nil)

	_, err := svc.AnalyzeFood(context.Background(), "banana")
	assert.Error(t, err)
}

func TestRate(t *testing.T) {
	chats := &mockChatStore{}
	svc := NewService(&mockCompleter{}, chats, &mockProfileSource{}, zap.NewNop())

	require.NoError(t, svc.Rate(context.Background(), 7, 1, true))
	assert.True(t, chats.rated[7])
}
