package model

import (
	"strings"
	"time"
)

const (
	CommunityPublic  = 0
	CommunityPrivate = 1
)

const (
	RoleUser      = 0
	RoleModerator = 1
	RoleAdmin     = 2
)

// Community Name 保留原始写法，NameKey 是小写规范化键，
// 唯一索引建在 NameKey 上保证社区名大小写不敏感唯一。
type Community struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null"`
	NameKey     string `gorm:"size:64;not null;uniqueIndex:uk_community_name"`
	Description string `gorm:"type:text"`
	Visibility  int8   `gorm:"not null;default:0"` // 0=public 1=private
	CreatorID   uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommunityNameKey 社区名的规范化键
func CommunityNameKey(name string) string {
	return strings.ToLower(name)
}

type CommunityMember struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	Role        int    `gorm:"not null;default:0"` // 0=user 1=moderator 2=admin
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
