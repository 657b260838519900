package model

import "time"

const (
	RequestPending  = 0
	RequestAccepted = 1
	RequestRejected = 2
)

// JoinRequest 私有社区的加入申请，(community_id, user_id) 至多一行。
// 被拒绝后允许重新提交（状态翻回 pending），与 Connection 的策略不同。
type JoinRequest struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_request_community_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_request_community_user"`
	Status      int8   `gorm:"not null;default:0"` // 0=pending 1=accepted 2=rejected
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (JoinRequest) TableName() string {
	return "join_requests"
}
