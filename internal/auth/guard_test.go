// File: internal/auth/guard_test.go
package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGuard_Can(t *testing.T) {
	guard := NewGuard()
	owner := Actor{ID: uuid.New(), Name: "Owner", Role: "facilitator"}
	stranger := Actor{ID: uuid.New(), Name: "Stranger", Role: "learner"}
	admin := Actor{ID: uuid.New(), Name: "Admin", Role: "admin"}

	t.Run("order management is owner-only", func(t *testing.T) {
		assert.True(t, guard.Can(owner, ActionManageOrder, owner.ID))
		assert.False(t, guard.Can(stranger, ActionManageOrder, owner.ID))
		assert.False(t, guard.Can(admin, ActionManageOrder, owner.ID), "admin role must not bypass order ownership")
	})

	t.Run("content deletion is admin-only", func(t *testing.T) {
		assert.True(t, guard.Can(admin, ActionDeleteContent, owner.ID))
		assert.False(t, guard.Can(owner, ActionDeleteContent, owner.ID), "owning content does not grant deletion")
		assert.False(t, guard.Can(stranger, ActionDeleteContent, owner.ID))
	})

	t.Run("notification management is strictly owner-only", func(t *testing.T) {
		assert.True(t, guard.Can(owner, ActionManageNotification, owner.ID))
		assert.False(t, guard.Can(admin, ActionManageNotification, owner.ID), "admin role must not bypass notification ownership")
	})

	t.Run("facilitator provisioning is admin-only", func(t *testing.T) {
		assert.True(t, guard.Can(admin, ActionCreateFacilitator, uuid.Nil))
		assert.False(t, guard.Can(owner, ActionCreateFacilitator, uuid.Nil))
	})

	t.Run("tutorial upload needs facilitator or admin", func(t *testing.T) {
		assert.True(t, guard.Can(owner, ActionUploadTutorial, uuid.Nil))
		assert.True(t, guard.Can(admin, ActionUploadTutorial, uuid.Nil))
		assert.False(t, guard.Can(stranger, ActionUploadTutorial, uuid.Nil))
	})

	t.Run("unknown action is denied", func(t *testing.T) {
		assert.False(t, guard.Can(admin, Action("unknown"), uuid.Nil))
	})
}
