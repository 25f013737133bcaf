package dashboard

import (
	"context"

	"go.uber.org/zap"

	"swasthyam/internal/model"
)

// pregnancyMilestones are the fixed checkpoints shown to pregnant users,
// in week order.
var pregnancyMilestones = []PregnancyMilestone{
	{Week: 12, Description: "End of First Trimester"},
	{Week: 20, Description: "Anatomy Scan"},
	{Week: 28, Description: "Start of Third Trimester"},
	{Week: 36, Description: "Weekly Checkups Begin"},
	{Week: 40, Description: "Due Date"},
}

type PregnancyMilestone struct {
	Week        int
	Description string
	WeeksUntil  int
}

type ProfileSource interface {
	Get(ctx context.Context, userID int) (*model.Profile, error)
}

type ChatSource interface {
	ListRecent(ctx context.Context, userID, limit int) ([]model.ChatMessage, error)
	Counts(ctx context.Context, userID int) (total, helpful int, err error)
}

type PostSource interface {
	ListRecentPostsByAuthor(ctx context.Context, authorID, limit int) ([]model.ForumPost, error)
}

type ChildSource interface {
	ListByParent(ctx context.Context, parentID int) ([]model.Child, error)
}

type Service struct {
	profiles ProfileSource
	chats    ChatSource
	posts    PostSource
	children ChildSource
	logger   *zap.Logger
}

func NewService(profiles ProfileSource, chats ChatSource, posts PostSource, children ChildSource, logger *zap.Logger) *Service {
	return &Service{profiles: profiles, chats: chats, posts: posts, children: children, logger: logger}
}

// Summary is everything the dashboard page needs in one response.
type Summary struct {
	Profile            *model.Profile
	BMI                float64
	BMICategory        string
	Trimester          int
	ProfileCompletion  int
	TotalChats         int
	HelpfulChats       int
	RecentChats        []model.ChatMessage
	RecentPosts        []model.ForumPost
	Children           []model.Child
	UpcomingMilestones []PregnancyMilestone
}

// Summarize assembles the dashboard. Secondary sections degrade to empty
// rather than failing the whole page.
func (s *Service) Summarize(ctx context.Context, userID int) (*Summary, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Profile:           profile,
		BMICategory:       profile.BMICategory(),
		Trimester:         profile.Trimester(),
		ProfileCompletion: profile.CompletionPercentage(),
	}
	if bmi, ok := profile.BMI(); ok {
		summary.BMI = bmi
	}

	if total, helpful, err := s.chats.Counts(ctx, userID); err != nil {
		s.logger.Warn("Dashboard chat counts failed", zap.Int("user_id", userID), zap.Error(err))
	} else {
		summary.TotalChats = total
		summary.HelpfulChats = helpful
	}
	if chats, err := s.chats.ListRecent(ctx, userID, 5); err != nil {
		s.logger.Warn("Dashboard recent chats failed", zap.Int("user_id", userID), zap.Error(err))
	} else {
		summary.RecentChats = chats
	}
	if posts, err := s.posts.ListRecentPostsByAuthor(ctx, userID, 5); err != nil {
		s.logger.Warn("Dashboard recent posts failed", zap.Int("user_id", userID), zap.Error(err))
	} else {
		summary.RecentPosts = posts
	}
	if children, err := s.children.ListByParent(ctx, userID); err != nil {
		s.logger.Warn("Dashboard children failed", zap.Int("user_id", userID), zap.Error(err))
	} else {
		summary.Children = children
	}

	summary.UpcomingMilestones = upcomingMilestones(profile)
	return summary, nil
}

// upcomingMilestones returns the next up-to-3 checkpoints strictly ahead
// of the current week, pregnant users only.
func upcomingMilestones(p *model.Profile) []PregnancyMilestone {
	if p.PregnancyStatus != model.PregnancyStatusPregnant || p.PregnancyWeeks == nil {
		return nil
	}
	current := *p.PregnancyWeeks
	var out []PregnancyMilestone
	for _, m := range pregnancyMilestones {
		if m.Week > current {
			m.WeeksUntil = m.Week - current
			out = append(out, m)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}
