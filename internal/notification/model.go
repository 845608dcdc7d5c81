// File: internal/notification/model.go
package notification

import (
	"time"

	"skillmarket_backend/internal/common"

	"github.com/google/uuid"
)

// Notification is a persisted in-app message addressed to one recipient.
// The optional OrderID and CommentID link it back to the event source.
type Notification struct {
	common.BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"userId"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	IsRead    bool       `gorm:"not null;default:false;index:idx_notifications_user_read" json:"isRead"`
	OrderID   *uuid.UUID `gorm:"type:uuid" json:"orderId,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid" json:"commentId,omitempty"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}

// Response is the API representation of a notification.
type Response struct {
	ID        uuid.UUID  `json:"id"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	OrderID   *uuid.UUID `json:"orderId,omitempty"`
	CommentID *uuid.UUID `json:"commentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToResponse converts the Notification model to its API representation.
func (n *Notification) ToResponse() Response {
	return Response{
		ID:        n.ID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		OrderID:   n.OrderID,
		CommentID: n.CommentID,
		CreatedAt: n.CreatedAt,
	}
}

// CountResponse is the payload of the unread-count endpoint.
type CountResponse struct {
	Count int64 `json:"count"`
}
