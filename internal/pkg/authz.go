package pkg

import "Lee_Social/internal/model"

// RoleNone 表示没有成员身份
const RoleNone = -1

type Action string

const (
	ActionPostInCommunity Action = "post_in_community"
	ActionManageEvent     Action = "manage_event"
	ActionReviewRequest   Action = "review_request"
	ActionModerateContent Action = "moderate_content"
	ActionRemoveMember    Action = "remove_member"
	ActionManageCommunity Action = "manage_community"
	ActionRemoveAdmin     Action = "remove_admin"
)

// capabilities 动作所需的最低角色。RemoveAdmin 不在表内：任何角色都不允许。
var capabilities = map[Action]int{
	ActionPostInCommunity: model.RoleUser,
	ActionManageEvent:     model.RoleModerator,
	ActionReviewRequest:   model.RoleModerator,
	ActionModerateContent: model.RoleModerator,
	ActionRemoveMember:    model.RoleAdmin,
	ActionManageCommunity: model.RoleAdmin,
}

// Can 纯函数角色鉴权
func Can(role int, action Action) bool {
	min, ok := capabilities[action]
	if !ok {
		return false
	}
	return role >= min
}

// CanWithOwnership 资源创建者对该资源拥有版主级别权限（仅内容/活动类动作）
func CanWithOwnership(role int, action Action, isOwner bool) bool {
	if isOwner && (action == ActionManageEvent || action == ActionModerateContent) {
		if role < model.RoleModerator {
			role = model.RoleModerator
		}
	}
	return Can(role, action)
}
