package forum

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"swasthyam/internal/model"
)

var (
	ErrInvalidReportReason = errors.New("invalid report reason")
	ErrEmptyReportTarget   = errors.New("report must target a post or a comment")
)

// Store is the forum repository surface the service needs.
type Store interface {
	ListCategories(ctx context.Context) ([]model.ForumCategory, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*model.ForumCategory, error)

	CreatePost(ctx context.Context, p *model.ForumPost) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPosts(ctx context.Context, limit, offset int) ([]model.ForumPost, error)
	ListPostsByCategory(ctx context.Context, categoryID, limit, offset int) ([]model.ForumPost, error)
	FindPostBySlug(ctx context.Context, slug string) (*model.ForumPost, error)
	IncrementViews(ctx context.Context, postID int) error

	CreateComment(ctx context.Context, c *model.ForumComment) error
	ListCommentsByPost(ctx context.Context, postID int) ([]model.ForumComment, error)

	TogglePostLike(ctx context.Context, userID, postID int) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID int) (bool, error)
	ToggleBookmark(ctx context.Context, userID, postID int) (bool, error)

	CreateReport(ctx context.Context, rep *model.ForumReport) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Categories(ctx context.Context) ([]model.ForumCategory, error) {
	return s.store.ListCategories(ctx)
}

type CreatePostInput struct {
	Title         string
	Content       string
	CategorySlug  string
	PregnancyWeek *int
}

// CreatePost publishes a post under a collision-free slug derived from
// the title.
func (s *Service) CreatePost(ctx context.Context, authorID int, input CreatePostInput) (*model.ForumPost, error) {
	post := &model.ForumPost{
		AuthorID:      authorID,
		Title:         input.Title,
		Content:       input.Content,
		PregnancyWeek: input.PregnancyWeek,
		Status:        model.PostStatusPublished,
	}

	if input.CategorySlug != "" {
		category, err := s.store.FindCategoryBySlug(ctx, input.CategorySlug)
		if err != nil {
			return nil, err
		}
		post.CategoryID = &category.ID
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("Forum post created", zap.Int("post_id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}

// uniqueSlug appends "-1", "-2", ... until the slug is free. Bounded so a
// pathological title cannot loop forever.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	slug := base
	for counter := 1; counter < 1000; counter++ {
		taken, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", fmt.Errorf("could not find a free slug for %q", title)
}

// ListPosts returns a page of published posts, pinned first. An empty
// categorySlug means all categories.
func (s *Service) ListPosts(ctx context.Context, categorySlug string, limit, offset int) ([]model.ForumPost, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if categorySlug == "" {
		return s.store.ListPosts(ctx, limit, offset)
	}
	category, err := s.store.FindCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.store.ListPostsByCategory(ctx, category.ID, limit, offset)
}

// PostDetail is one post with its comment thread.
type PostDetail struct {
	Post     *model.ForumPost
	Comments []model.ForumComment
}

// GetPost loads a post by slug, counts the view and returns its comments
// in created order.
func (s *Service) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.store.FindPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncrementViews(ctx, post.ID); err != nil {
		s.logger.Warn("Failed to count post view", zap.Int("post_id", post.ID), zap.Error(err))
	}
	comments, err := s.store.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments}, nil
}

// AddComment appends a comment to a post, optionally replying to another
// comment.
func (s *Service) AddComment(ctx context.Context, authorID, postID int, parentID *int, content string) (*model.ForumComment, error) {
	comment := &model.ForumComment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleLike flips the user's like on a post and reports the state after.
func (s *Service) ToggleLike(ctx context.Context, userID, postID int) (bool, error) {
	return s.store.TogglePostLike(ctx, userID, postID)
}

func (s *Service) ToggleCommentLike(ctx context.Context, userID, commentID int) (bool, error) {
	return s.store.ToggleCommentLike(ctx, userID, commentID)
}

func (s *Service) ToggleBookmark(ctx context.Context, userID, postID int) (bool, error) {
	return s.store.ToggleBookmark(ctx, userID, postID)
}

// Report files a moderation report against a post or a comment.
func (s *Service) Report(ctx context.Context, reporterID int, postID, commentID *int, reason, description string) error {
	if !model.ReportReasons[reason] {
		return ErrInvalidReportReason
	}
	if postID == nil && commentID == nil {
		return ErrEmptyReportTarget
	}
	rep := &model.ForumReport{
		ReporterID:  reporterID,
		PostID:      postID,
		CommentID:   commentID,
		Reason:      reason,
		Description: description,
		Status:      "pending",
	}
	if err := s.store.CreateReport(ctx, rep); err != nil {
		return err
	}
	s.logger.Info("Content reported", zap.Int("reporter_id", reporterID), zap.String("reason", reason))
	return nil
}
