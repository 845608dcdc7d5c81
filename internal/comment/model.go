// File: internal/comment/model.go
package comment

import (
	"time"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
)

// Comment is a message on a tutorial's discussion thread. Threads are one
// level deep: a comment with a nil ParentID is top-level, everything else is
// a reply attached to a top-level comment.
type Comment struct {
	common.BaseModel
	TutorialID uuid.UUID  `gorm:"type:uuid;not null;index" json:"tutorialId"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Author     *user.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Content    string     `gorm:"type:text;not null" json:"content"`
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}

// CreateRequest is the payload for adding a comment or a reply.
type CreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// Response is the API representation of a comment, with its replies nested.
type Response struct {
	ID         uuid.UUID  `json:"id"`
	TutorialID uuid.UUID  `json:"tutorialId"`
	AuthorID   uuid.UUID  `json:"authorId"`
	AuthorName string     `json:"authorName,omitempty"`
	ParentID   *uuid.UUID `json:"parentId,omitempty"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	Replies    []Response `json:"replies,omitempty"`
}

// ToResponse converts the Comment model to its API representation.
func (c *Comment) ToResponse() Response {
	resp := Response{
		ID:         c.ID,
		TutorialID: c.TutorialID,
		AuthorID:   c.AuthorID,
		ParentID:   c.ParentID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	}
	return resp
}
