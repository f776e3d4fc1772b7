package models

import (
	"time"

	"gorm.io/datatypes"
)

// PostAuthor identifies who wrote a post or reply. Authors come from the
// external identity provider and are stored denormalized.
type PostAuthor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Reply is a nested response to a post.
type Reply struct {
	ID        uint       `json:"id"`
	Author    PostAuthor `json:"author"`
	Content   string     `json:"content"`
	CreatedAt string     `json:"created_at"`
	Likes     int        `json:"likes"`
}

// Post is a top-level message in a discussion thread.
type Post struct {
	ID        uint       `json:"id"`
	Author    PostAuthor `json:"author"`
	Content   string     `json:"content"`
	CreatedAt string     `json:"created_at"`
	Likes     int        `json:"likes"`
	Replies   []Reply    `json:"replies"`
}

// Discussion is a subject thread. Discussions carry no completion concept and
// therefore never receive a progress summary.
type Discussion struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	Topic          string                    `gorm:"type:text;not null" json:"topic"`
	Subject        string                    `gorm:"type:text;index" json:"subject"`
	Description    string                    `gorm:"type:text" json:"description"`
	Participants   int                       `gorm:"default:0" json:"participants"`
	RepliesCount   int                       `gorm:"default:0" json:"replies_count"`
	LastActivityAt *time.Time                `json:"last_activity_at"`
	Posts          datatypes.JSONSlice[Post] `json:"posts"`
	CreatedAt      time.Time                 `json:"created_at"`
}
