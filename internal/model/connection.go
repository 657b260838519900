package model

import (
	"fmt"
	"time"
)

const (
	ConnectionPending  = 0
	ConnectionAccepted = 1
	ConnectionRejected = 2
	ConnectionBlocked  = 3
)

// Connection 双向关系的单行有向表示：UserID 为发起方，ConnectedUserID 为接收方。
// PairKey 是无序对的规范化键（min:max），唯一索引保证一对用户至多一行。
type Connection struct {
	ID              uint64 `gorm:"primaryKey"`
	UserID          uint64 `gorm:"not null;index"`
	ConnectedUserID uint64 `gorm:"not null;index"`
	PairKey         string `gorm:"size:48;not null;uniqueIndex:uk_connection_pair"`
	Status          int8   `gorm:"not null;default:0"` // 0=pending 1=accepted 2=rejected 3=blocked
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Connection) TableName() string {
	return "connections"
}

// ConnectionPairKey 规范化无序对键
func ConnectionPairKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// 相对于查看者的连接状态投影
const (
	RelationSelf            = "self"
	RelationNotConnected    = "not_connected"
	RelationRequestSent     = "request_sent"
	RelationRequestReceived = "request_received"
	RelationConnected       = "connected"
	RelationRejected        = "rejected"
	RelationBlocked         = "blocked"
)
