package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type ForumRepository struct {
	db *pgxpool.Pool
}

func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{db: db}
}

// ListCategories returns all categories in display order.
func (r *ForumRepository) ListCategories(ctx context.Context) ([]model.ForumCategory, error) {
	query := `
        SELECT id, name, slug, description, icon, display_order
        FROM forum_categories
        ORDER BY display_order, name
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.ForumCategory
	for rows.Next() {
		var c model.ForumCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.DisplayOrder); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertCategory inserts a category if its slug is new.
func (r *ForumRepository) UpsertCategory(ctx context.Context, c *model.ForumCategory) error {
	query := `
        INSERT INTO forum_categories (name, slug, description, icon, display_order)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (slug) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, c.Name, c.Slug, c.Description, c.Icon, c.DisplayOrder)
	return err
}

// FindCategoryBySlug returns one category.
func (r *ForumRepository) FindCategoryBySlug(ctx context.Context, slug string) (*model.ForumCategory, error) {
	query := `
        SELECT id, name, slug, description, icon, display_order
        FROM forum_categories
        WHERE slug = $1
    `
	var c model.ForumCategory
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.DisplayOrder,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreatePost inserts a post; the slug must already be unique.
func (r *ForumRepository) CreatePost(ctx context.Context, p *model.ForumPost) error {
	query := `
        INSERT INTO forum_posts (author_id, category_id, title, slug, content,
                                 pregnancy_week, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		p.AuthorID, p.CategoryID, p.Title, p.Slug, p.Content,
		p.PregnancyWeek, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// SlugExists reports whether a post slug is taken.
func (r *ForumRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM forum_posts WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

const postSelect = `
    SELECT p.id, p.author_id, p.category_id, p.title, p.slug, p.content,
           p.pregnancy_week, p.status, p.views, p.pinned, p.locked,
           p.created_at, p.updated_at,
           u.username,
           COALESCE(c.name, ''),
           (SELECT COUNT(*) FROM forum_comments fc WHERE fc.post_id = p.id),
           (SELECT COUNT(*) FROM forum_likes fl WHERE fl.post_id = p.id)
    FROM forum_posts p
    JOIN users u ON u.id = p.author_id
    LEFT JOIN forum_categories c ON c.id = p.category_id
`

func scanPost(row pgx.Row, p *model.ForumPost) error {
	return row.Scan(
		&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Slug, &p.Content,
		&p.PregnancyWeek, &p.Status, &p.Views, &p.Pinned, &p.Locked,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.CategoryName, &p.CommentCount, &p.LikeCount,
	)
}

// ListPosts returns published posts, pinned first then newest.
func (r *ForumRepository) ListPosts(ctx context.Context, limit, offset int) ([]model.ForumPost, error) {
	query := postSelect + `
        WHERE p.status = 'published'
        ORDER BY p.pinned DESC, p.created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.ForumPost
	for rows.Next() {
		var p model.ForumPost
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPostsByCategory returns published posts in a category, newest first.
func (r *ForumRepository) ListPostsByCategory(ctx context.Context, categoryID, limit, offset int) ([]model.ForumPost, error) {
	query := postSelect + `
        WHERE p.status = 'published' AND p.category_id = $1
        ORDER BY p.pinned DESC, p.created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.ForumPost
	for rows.Next() {
		var p model.ForumPost
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListRecentPostsByAuthor returns the author's latest posts.
func (r *ForumRepository) ListRecentPostsByAuthor(ctx context.Context, authorID, limit int) ([]model.ForumPost, error) {
	query := postSelect + `
        WHERE p.author_id = $1
        ORDER BY p.created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, authorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.ForumPost
	for rows.Next() {
		var p model.ForumPost
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindPostBySlug returns one post.
func (r *ForumRepository) FindPostBySlug(ctx context.Context, slug string) (*model.ForumPost, error) {
	query := postSelect + ` WHERE p.slug = $1`
	var p model.ForumPost
	err := scanPost(r.db.QueryRow(ctx, query, slug), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViews bumps the view counter.
func (r *ForumRepository) IncrementViews(ctx context.Context, postID int) error {
	_, err := r.db.Exec(ctx, `UPDATE forum_posts SET views = views + 1 WHERE id = $1`, postID)
	return err
}

// CreateComment inserts a comment on a post.
func (r *ForumRepository) CreateComment(ctx context.Context, c *model.ForumComment) error {
	query := `
        INSERT INTO forum_comments (post_id, author_id, parent_id, content, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, c.PostID, c.AuthorID, c.ParentID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
}

// ListCommentsByPost returns comments oldest first.
func (r *ForumRepository) ListCommentsByPost(ctx context.Context, postID int) ([]model.ForumComment, error) {
	query := `
        SELECT fc.id, fc.post_id, fc.author_id, fc.parent_id, fc.content,
               fc.created_at, u.username,
               (SELECT COUNT(*) FROM forum_likes fl WHERE fl.comment_id = fc.id)
        FROM forum_comments fc
        JOIN users u ON u.id = fc.author_id
        WHERE fc.post_id = $1
        ORDER BY fc.created_at
    `
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.ForumComment
	for rows.Next() {
		var c model.ForumComment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content,
			&c.CreatedAt, &c.AuthorName, &c.LikeCount,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// TogglePostLike likes a post, or removes an existing like. Returns true
// when the post is liked after the call.
func (r *ForumRepository) TogglePostLike(ctx context.Context, userID, postID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO forum_likes (user_id, post_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, post_id) DO NOTHING
    `, userID, postID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM forum_likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	return false, err
}

// ToggleCommentLike is the comment counterpart of TogglePostLike.
func (r *ForumRepository) ToggleCommentLike(ctx context.Context, userID, commentID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO forum_likes (user_id, comment_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, comment_id) DO NOTHING
    `, userID, commentID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM forum_likes WHERE user_id = $1 AND comment_id = $2`, userID, commentID)
	return false, err
}

// ToggleBookmark saves a post for later, or removes an existing bookmark.
func (r *ForumRepository) ToggleBookmark(ctx context.Context, userID, postID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO forum_bookmarks (user_id, post_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, post_id) DO NOTHING
    `, userID, postID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM forum_bookmarks WHERE user_id = $1 AND post_id = $2`, userID, postID)
	return false, err
}

// CreateReport stores a moderation report.
func (r *ForumRepository) CreateReport(ctx context.Context, rep *model.ForumReport) error {
	query := `
        INSERT INTO forum_reports (reporter_id, post_id, comment_id, reason,
                                   description, status, created_at)
        VALUES ($1, $2, $3, $4, $5, 'pending', NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		rep.ReporterID, rep.PostID, rep.CommentID, rep.Reason, rep.Description,
	).Scan(&rep.ID)
}
