package model

import "time"

// CommunityInvitation 社区邀请，(community_id, invitee_id) 至多一行。
// 被拒绝后可重新邀请（更新回 pending 并记录新的邀请人）。
type CommunityInvitation struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_invitation_community_invitee"`
	InviterID   uint64 `gorm:"not null;index"`
	InviteeID   uint64 `gorm:"not null;index;uniqueIndex:uk_invitation_community_invitee"`
	Status      int8   `gorm:"not null;default:0"` // 0=pending 1=accepted 2=rejected
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommunityInvitation) TableName() string {
	return "community_invitations"
}
