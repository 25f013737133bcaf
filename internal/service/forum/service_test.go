package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
)

type mockStore struct {
	categories []model.ForumCategory
	posts      []model.ForumPost
	comments   []model.ForumComment
	reports    []model.ForumReport
	viewCounts map[int]int
	liked      map[int]bool
}

func (m *mockStore) ListCategories(ctx context.Context) ([]model.ForumCategory, error) {
	return m.categories, nil
}

func (m *mockStore) FindCategoryBySlug(ctx context.Context, slug string) (*model.ForumCategory, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			cat := c
			return &cat, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) CreatePost(ctx context.Context, p *model.ForumPost) error {
	p.ID = len(m.posts) + 1
	m.posts = append(m.posts, *p)
	return nil
}

func (m *mockStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) ListPosts(ctx context.Context, limit, offset int) ([]model.ForumPost, error) {
	return m.posts, nil
}

func (m *mockStore) ListPostsByCategory(ctx context.Context, categoryID, limit, offset int) ([]model.ForumPost, error) {
	var out []model.ForumPost
	for _, p := range m.posts {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) FindPostBySlug(ctx context.Context, slug string) (*model.ForumPost, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			post := p
			return &post, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) IncrementViews(ctx context.Context, postID int) error {
	if m.viewCounts == nil {
		m.viewCounts = map[int]int{}
	}
	m.viewCounts[postID]++
	return nil
}

func (m *mockStore) CreateComment(ctx context.Context, c *model.ForumComment) error {
	c.ID = len(m.comments) + 1
	m.comments = append(m.comments, *c)
	return nil
}

func (m *mockStore) ListCommentsByPost(ctx context.Context, postID int) ([]model.ForumComment, error) {
	var out []model.ForumComment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) TogglePostLike(ctx context.Context, userID, postID int) (bool, error) {
	if m.liked == nil {
		m.liked = map[int]bool{}
	}
	m.liked[postID] = !m.liked[postID]
	return m.liked[postID], nil
}

func (m *mockStore) ToggleCommentLike(ctx context.Context, userID, commentID int) (bool, error) {
	return true, nil
}

func (m *mockStore) ToggleBookmark(ctx context.Context, userID, postID int) (bool, error) {
	return true, nil
}

func (m *mockStore) CreateReport(ctx context.Context, rep *model.ForumReport) error {
	rep.ID = len(m.reports) + 1
	m.reports = append(m.reports, *rep)
	return nil
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sleep-tips-for-newborns", slugify("Sleep Tips for Newborns!"))
	assert.Equal(t, "what-s-a-normal-bmi", slugify("  What's a normal BMI?  "))
	assert.Equal(t, "post", slugify("???"))
}

func TestCreatePostSlugCollision(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, zap.NewNop())

	first, err := svc.CreatePost(context.Background(), 1, CreatePostInput{Title: "Sleep Tips", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "sleep-tips", first.Slug)

	second, err := svc.CreatePost(context.Background(), 2, CreatePostInput{Title: "Sleep Tips", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "sleep-tips-1", second.Slug)

	third, err := svc.CreatePost(context.Background(), 3, CreatePostInput{Title: "Sleep Tips!!", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "sleep-tips-2", third.Slug)
}

func TestCreatePostResolvesCategory(t *testing.T) {
	store := &mockStore{
		categories: []model.ForumCategory{{ID: 4, Name: "Vaccinations", Slug: "vaccinations"}},
	}
	svc := NewService(store, zap.NewNop())

	post, err := svc.CreatePost(context.Background(), 1, CreatePostInput{
		Title: "First shots", Content: "...", CategorySlug: "vaccinations",
	})
	require.NoError(t, err)
	require.NotNil(t, post.CategoryID)
	assert.Equal(t, 4, *post.CategoryID)
	assert.Equal(t, model.PostStatusPublished, post.Status)

	_, err = svc.CreatePost(context.Background(), 1, CreatePostInput{
		Title: "Lost", Content: "...", CategorySlug: "no-such-category",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPostCountsView(t *testing.T) {
	store := &mockStore{
		posts: []model.ForumPost{{ID: 9, Slug: "sleep-tips", Title: "Sleep Tips"}},
		comments: []model.ForumComment{
			{ID: 1, PostID: 9, Content: "try a routine"},
			{ID: 2, PostID: 8, Content: "other post"},
		},
	}
	svc := NewService(store, zap.NewNop())

	detail, err := svc.GetPost(context.Background(), "sleep-tips")
	require.NoError(t, err)
	assert.Equal(t, 9, detail.Post.ID)
	assert.Len(t, detail.Comments, 1)
	assert.Equal(t, 1, store.viewCounts[9])
}

func TestToggleLikeReportsStateAfter(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, zap.NewNop())

	liked, err := svc.ToggleLike(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestReportValidatesReason(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, zap.NewNop())
	postID := 9

	err := svc.Report(context.Background(), 1, &postID, nil, "spam", "obvious ad")
	require.NoError(t, err)
	require.Len(t, store.reports, 1)
	assert.Equal(t, "pending", store.reports[0].Status)

	err = svc.Report(context.Background(), 1, &postID, nil, "i-dislike-it", "")
	assert.ErrorIs(t, err, ErrInvalidReportReason)

	err = svc.Report(context.Background(), 1, nil, nil, "spam", "")
	assert.Error(t, err)
}
