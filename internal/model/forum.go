package model

import "time"

type ForumCategory struct {
	ID           int
	Name         string
	Slug         string
	Description  string
	Icon         string
	DisplayOrder int
}

// Post statuses.
const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
	PostStatusArchived  = "archived"
	PostStatusFlagged   = "flagged"
)

type ForumPost struct {
	ID            int
	AuthorID      int
	CategoryID    *int
	Title         string
	Slug          string
	Content       string
	PregnancyWeek *int
	Status        string
	Views         int
	Pinned        bool
	Locked        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined on list reads.
	AuthorName   string
	CategoryName string
	CommentCount int
	LikeCount    int
}

type ForumComment struct {
	ID        int
	PostID    int
	AuthorID  int
	ParentID  *int
	Content   string
	CreatedAt time.Time

	AuthorName string
	LikeCount  int
}

// Report reasons accepted from the web form.
var ReportReasons = map[string]bool{
	"spam":           true,
	"harassment":     true,
	"misinformation": true,
	"inappropriate":  true,
	"off_topic":      true,
	"other":          true,
}

type ForumReport struct {
	ID          int
	ReporterID  int
	PostID      *int
	CommentID   *int
	Reason      string
	Description string
	Status      string
	CreatedAt   time.Time
}
