package model

import "time"

// CommunityEvent 社区活动。创建者对自己的活动拥有版主级别的操作权限。
type CommunityEvent struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index"`
	CreatorID   uint64 `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	StartsAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommunityEvent) TableName() string {
	return "community_events"
}
