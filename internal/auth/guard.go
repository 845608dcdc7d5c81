// File: internal/auth/guard.go
package auth

import (
	"github.com/google/uuid"
)

// Action is a guarded operation on an owned resource.
type Action string

const (
	ActionManageOrder        Action = "order:manage"
	ActionDeleteContent      Action = "content:delete"
	ActionManageNotification Action = "notification:manage"
	ActionCreateFacilitator  Action = "facilitator:create"
	ActionUploadTutorial     Action = "tutorial:upload"
)

// Actor is the authenticated principal extracted from the request context.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// Guard decides whether an actor may perform an action on a resource owned
// by ownerID. Decisions are pure: the guard never touches storage.
type Guard struct{}

// NewGuard creates a Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Can reports whether the actor may perform action against a resource owned
// by ownerID.
//
// Ownership rules:
//   - order:manage         owner only (admins do not act on others' orders)
//   - content:delete       admin only
//   - notification:manage  owner only; admin role grants no bypass here
//   - facilitator:create   admin only
//   - tutorial:upload      facilitator or admin
func (g *Guard) Can(actor Actor, action Action, ownerID uuid.UUID) bool {
	switch action {
	case ActionManageOrder:
		return actor.ID == ownerID
	case ActionDeleteContent:
		return actor.IsAdmin()
	case ActionManageNotification:
		return actor.ID == ownerID
	case ActionCreateFacilitator:
		return actor.IsAdmin()
	case ActionUploadTutorial:
		return actor.Role == "facilitator" || actor.IsAdmin()
	}
	return false
}
