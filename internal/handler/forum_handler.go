package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/repository"
	"swasthyam/internal/service/forum"
)

type ForumHandler struct {
	forum  *forum.Service
	logger *zap.Logger
}

func NewForumHandler(forumService *forum.Service, logger *zap.Logger) *ForumHandler {
	return &ForumHandler{forum: forumService, logger: logger}
}

// Categories handles GET /forum/categories
func (h *ForumHandler) Categories(c *gin.Context) {
	categories, err := h.forum.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("Categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListPosts handles GET /forum/posts?category=&page=
func (h *ForumHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 20

	posts, err := h.forum.ListPosts(c.Request.Context(), c.Query("category"), pageSize, (page-1)*pageSize)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.logger.Error("ListPosts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

// CreatePost handles POST /forum/posts
func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		Title         string `json:"title" binding:"required,min=5,max=200"`
		Content       string `json:"content" binding:"required,min=10"`
		Category      string `json:"category"`
		PregnancyWeek *int   `json:"pregnancy_week" binding:"omitempty,min=1,max=42"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	post, err := h.forum.CreatePost(c.Request.Context(), userID, forum.CreatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		CategorySlug:  req.Category,
		PregnancyWeek: req.PregnancyWeek,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.logger.Error("CreatePost failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost handles GET /forum/posts/:slug
func (h *ForumHandler) GetPost(c *gin.Context) {
	detail, err := h.forum.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logger.Error("GetPost failed", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": detail.Post, "comments": detail.Comments})
}

// AddComment handles POST /forum/posts/:slug/comments
func (h *ForumHandler) AddComment(c *gin.Context) {
	userID := c.GetInt("user_id")

	detail, err := h.forum.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.logger.Error("AddComment post lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required,min=1"`
		ParentID *int   `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment, err := h.forum.AddComment(c.Request.Context(), userID, detail.Post.ID, req.ParentID, req.Content)
	if err != nil {
		h.logger.Error("AddComment failed", zap.Int("post_id", detail.Post.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ToggleLike handles POST /forum/likes/posts/:id
func (h *ForumHandler) ToggleLike(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	liked, err := h.forum.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		h.logger.Error("ToggleLike failed", zap.Int("post_id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleCommentLike handles POST /forum/likes/comments/:id
func (h *ForumHandler) ToggleCommentLike(c *gin.Context) {
	userID := c.GetInt("user_id")
	commentID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	liked, err := h.forum.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		h.logger.Error("ToggleCommentLike failed", zap.Int("comment_id", commentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleBookmark handles POST /forum/bookmarks/:id
func (h *ForumHandler) ToggleBookmark(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	bookmarked, err := h.forum.ToggleBookmark(c.Request.Context(), userID, postID)
	if err != nil {
		h.logger.Error("ToggleBookmark failed", zap.Int("post_id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle bookmark"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// Report handles POST /forum/report
func (h *ForumHandler) Report(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		PostID      *int   `json:"post_id"`
		CommentID   *int   `json:"comment_id"`
		Reason      string `json:"reason" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.forum.Report(c.Request.Context(), userID, req.PostID, req.CommentID, req.Reason, req.Description)
	if err != nil {
		if errors.Is(err, forum.ErrInvalidReportReason) || errors.Is(err, forum.ErrEmptyReportTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Report failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to file report"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "reported"})
}
