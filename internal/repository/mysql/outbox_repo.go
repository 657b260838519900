package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// InsertOutbox 在业务事务内写通知事件，与状态变更同生共死
func InsertOutbox(tx *gorm.DB, eventType string, actorID, recipientID, subjectID uint64, extra map[string]any) error {
	payload := map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor":      actorID,
		"recipient":  recipientID,
		"subject":    subjectID,
	}
	for k, v := range extra {
		payload[k] = v
	}
	raw, _ := json.Marshal(payload)
	ob := &model.NotificationOutbox{
		EventType:   eventType,
		ActorID:     actorID,
		RecipientID: recipientID,
		SubjectID:   subjectID,
		Payload:     string(raw),
		Status:      0,
	}
	return tx.Create(ob).Error
}

// List 拉取待投递事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.NotificationOutbox, error) {
	var list []model.NotificationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，累加重试计数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
