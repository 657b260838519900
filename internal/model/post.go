package model

import "time"

const (
	PostPublic    = 0
	PostPrivate   = 1
	PostFollowers = 2
)

const (
	PostStatusNormal  = 0
	PostStatusDeleted = 1
	PostStatusBanned  = 2
)

// Post CommunityID=0 表示个人帖子，不挂在社区下。
type Post struct {
	ID          uint64    `gorm:"primaryKey"`
	CommunityID uint64    `gorm:"not null;default:0;index:idx_community_time,priority:1"`
	AuthorID    uint64    `gorm:"not null;index:idx_author_time"`
	Title       string    `gorm:"size:200;not null"`
	Content     string    `gorm:"type:text"`
	Visibility  int8      `gorm:"not null;default:0"` // 0=public 1=private 2=followers
	Status      int       `gorm:"not null;default:0"` // 0=normal 1=deleted 2=banned
	CreatedAt   time.Time `gorm:"index:idx_community_time,priority:2,sort:desc"`
	UpdatedAt   time.Time
}
