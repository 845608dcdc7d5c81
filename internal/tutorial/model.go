// File: internal/tutorial/model.go
package tutorial

import (
	"time"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Tutorial is a piece of learning content posted by a facilitator. Exactly
// one of FilePath and YoutubeLink is set.
type Tutorial struct {
	common.BaseModel
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"authorId"`
	Author      *user.User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title       string         `gorm:"type:varchar(250);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(280);uniqueIndex;not null" json:"slug"`
	Category    string         `gorm:"type:varchar(100);index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	FilePath    string         `gorm:"type:varchar(500)" json:"filePath,omitempty"`
	YoutubeLink string         `gorm:"type:varchar(500)" json:"youtubeLink,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// TableName specifies the table name for the Tutorial model.
func (Tutorial) TableName() string {
	return "tutorials"
}

// CreateRequest is the payload for posting a new tutorial. FilePath and
// YoutubeLink are mutually exclusive; exactly one must be provided.
type CreateRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=250"`
	Category    string   `json:"category" binding:"omitempty,max=100"`
	Description string   `json:"description" binding:"max=10000"`
	FilePath    string   `json:"filePath" binding:"omitempty,max=500"`
	YoutubeLink string   `json:"youtubeLink" binding:"omitempty,url,max=500"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// Response is the API representation of a tutorial.
type Response struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"authorId"`
	AuthorName  string    `json:"authorName,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	FilePath    string    `json:"filePath,omitempty"`
	YoutubeLink string    `json:"youtubeLink,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts the Tutorial model to its API representation.
func (t *Tutorial) ToResponse() Response {
	resp := Response{
		ID:          t.ID,
		AuthorID:    t.AuthorID,
		Title:       t.Title,
		Slug:        t.Slug,
		Category:    t.Category,
		Description: t.Description,
		FilePath:    t.FilePath,
		YoutubeLink: t.YoutubeLink,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
	}
	if t.Author != nil {
		resp.AuthorName = t.Author.Name
	}
	return resp
}
