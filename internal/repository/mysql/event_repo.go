package mysql

import (
	"context"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, ev *model.CommunityEvent) error {
	return r.DB.WithContext(ctx).Create(ev).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint64) (*model.CommunityEvent, error) {
	var ev model.CommunityEvent
	err := r.DB.WithContext(ctx).First(&ev, id).Error
	return &ev, err
}

func (r *EventRepository) Update(ctx context.Context, id uint64, attrs map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.CommunityEvent{}).Where("id = ?", id).Updates(attrs).Error
}

func (r *EventRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.CommunityEvent{}, id).Error
}

func (r *EventRepository) ListByCommunity(ctx context.Context, communityID uint64, offset, limit int) ([]model.CommunityEvent, error) {
	var list []model.CommunityEvent
	err := r.DB.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("starts_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}
