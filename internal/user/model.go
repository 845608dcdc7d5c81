// File: internal/user/model.go
package user

import (
	"skillmarket_backend/internal/common"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleLearner     Role = "learner"
	RoleFacilitator Role = "facilitator"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleLearner, RoleFacilitator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	common.BaseModel
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'learner';index" json:"role"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish reports whether the user may create products and tutorials.
func (u *User) CanPublish() bool {
	return u.Role == RoleFacilitator || u.Role == RoleAdmin
}

// ToResponse converts the User model to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
