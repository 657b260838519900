package mysql

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 社区与创建者的 admin 成员行在同一事务内落库，失败则两者都不存在。
// uk_community_name 建在规范化键上，大小写变体在任何排序规则下都冲突。
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) (*model.Community, error) {
	c.NameKey = model.CommunityNameKey(c.Name)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkg.Conflict("community name already taken")
			}
			return pkg.Internal(err)
		}
		mRepo := &CommunityMemberRepository{DB: tx}
		if err := mRepo.JoinIdempotent(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			Role:        model.RoleAdmin,
		}); err != nil {
			return pkg.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).First(&community, id).Error
	return &community, err
}

// FindByName 按规范化键查找，大小写不敏感
func (r *CommunityRepository) FindByName(ctx context.Context, name string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).Where("name_key = ?", model.CommunityNameKey(name)).First(&community).Error
	return &community, err
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) Update(ctx context.Context, id uint64, attrs map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Community{}).Where("id = ?", id).Updates(attrs).Error
}

// Delete 删除社区及其成员行
func (r *CommunityRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, id).Error
	})
}
