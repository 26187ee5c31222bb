// Package access holds the request authorization rules and the construction of
// owner-scoped list queries shared by the resume, message and user handlers.
package access

import "recruit/internal/entity"

// Actor is the identity behind a request. A nil *Actor is an anonymous caller.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.UserRoleAdmin
}

// Action names an operation performed on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// Admin-only capabilities, never granted through ownership.
	ActionUpdateStatus Action = "updateStatus"
	ActionMarkRead     Action = "markRead"
	ActionReply        Action = "reply"
	ActionChangeRole   Action = "changeRole"
	ActionChangeActive Action = "changeActive"
	ActionListUsers    Action = "listUsers"
	ActionDeleteUser   Action = "deleteUser"
	ActionViewStats    Action = "viewStats"
)

// SelfScoped reports whether an owner may perform the action on their own record.
func (a Action) SelfScoped() bool {
	switch a {
	case ActionRead, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// CanAccess decides whether actor may perform action on a record owned by ownerID.
// A nil ownerID marks an unowned record (anonymous guest message), which only
// admins can touch.
func CanAccess(actor *Actor, ownerID *uint, action Action) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if !action.SelfScoped() {
		return false
	}
	return ownerID != nil && *ownerID == actor.ID
}

// HasCapability checks an admin-only capability regardless of ownership.
func HasCapability(actor *Actor, action Action) bool {
	return actor.IsAdmin()
}

// Owner is a small helper for passing a non-null owner id to CanAccess.
func Owner(id uint) *uint {
	return &id
}
