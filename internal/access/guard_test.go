package access

import (
	"testing"

	"recruit/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessOwnership(t *testing.T) {
	user := &Actor{ID: 7, Role: entity.UserRoleUser}

	tests := []struct {
		name   string
		owner  *uint
		action Action
		want   bool
	}{
		{name: "读取自己的记录", owner: Owner(7), action: ActionRead, want: true},
		{name: "读取他人的记录", owner: Owner(8), action: ActionRead, want: false},
		{name: "删除自己的记录", owner: Owner(7), action: ActionDelete, want: true},
		{name: "删除他人的记录", owner: Owner(8), action: ActionDelete, want: false},
		{name: "匿名留言", owner: nil, action: ActionDelete, want: false},
		{name: "修改自己简历状态", owner: Owner(7), action: ActionUpdateStatus, want: false},
		{name: "回复自己的留言", owner: Owner(7), action: ActionReply, want: false},
		{name: "修改自己的角色", owner: Owner(7), action: ActionChangeRole, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(user, tt.owner, tt.action))
		})
	}
}

func TestCanAccessReadIffOwner(t *testing.T) {
	for actorID := uint(1); actorID <= 5; actorID++ {
		actor := &Actor{ID: actorID, Role: entity.UserRoleUser}
		for ownerID := uint(0); ownerID <= 5; ownerID++ {
			got := CanAccess(actor, Owner(ownerID), ActionRead)
			assert.Equal(t, ownerID == actorID, got, "actor %d owner %d", actorID, ownerID)
		}
	}
}

func TestAdminCanDoEverything(t *testing.T) {
	admin := &Actor{ID: 1, Role: entity.UserRoleAdmin}
	actions := []Action{
		ActionRead, ActionUpdate, ActionDelete, ActionUpdateStatus, ActionMarkRead,
		ActionReply, ActionChangeRole, ActionChangeActive, ActionListUsers,
		ActionDeleteUser, ActionViewStats,
	}
	owners := []*uint{nil, Owner(0), Owner(1), Owner(99)}

	for _, action := range actions {
		for _, owner := range owners {
			assert.True(t, CanAccess(admin, owner, action), "action %s", action)
		}
		assert.True(t, HasCapability(admin, action), "capability %s", action)
	}
}

func TestAnonymousIsDenied(t *testing.T) {
	assert.False(t, CanAccess(nil, Owner(1), ActionRead))
	assert.False(t, CanAccess(nil, nil, ActionRead))
	assert.False(t, HasCapability(nil, ActionViewStats))
}

func TestHasCapabilityRequiresAdmin(t *testing.T) {
	user := &Actor{ID: 3, Role: entity.UserRoleUser}
	assert.False(t, HasCapability(user, ActionUpdateStatus))
	assert.False(t, HasCapability(user, ActionListUsers))
	assert.False(t, (&Actor{ID: 3, Role: "super"}).IsAdmin())
}
