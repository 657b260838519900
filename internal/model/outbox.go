package model

import "time"

// 通知事件类型
const (
	EventConnectionRequested = "connection.requested"
	EventConnectionAccepted  = "connection.accepted"
	EventConnectionRejected  = "connection.rejected"
	EventInvitationSent      = "invitation.sent"
	EventInvitationAccepted  = "invitation.accepted"
	EventJoinApproved        = "community.join_approved"
	EventMemberRemoved       = "community.member_removed"
)

// NotificationOutbox 通知事件表，与触发的业务事务同库同事务写入，
// 由 relayer 异步投递到 kafka。投递失败不影响业务状态。
type NotificationOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:48;not null"`
	ActorID     uint64 `gorm:"not null"`
	RecipientID uint64 `gorm:"not null;index"`
	SubjectID   uint64 `gorm:"not null"`
	Payload     string `gorm:"type:json;not null"`
	Status      int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
