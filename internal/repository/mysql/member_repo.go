package mysql

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// JoinIdempotent 幂等插入：(community_id, user_id) 已存在则不报错也不覆盖。
// 加入竞争（申请与邀请同时通过）时输掉的一方静默落空，不产生重复成员。
func (r *CommunityMemberRepository) JoinIdempotent(member *model.CommunityMember) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

// Create 非幂等插入，已是成员返回重复键错误
func (r *CommunityMemberRepository) Create(ctx context.Context, member *model.CommunityMember) error {
	return r.DB.WithContext(ctx).Create(member).Error
}

func (r *CommunityMemberRepository) Find(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	var m model.CommunityMember
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&m).Error
	return &m, err
}

func (r *CommunityMemberRepository) FindByID(ctx context.Context, id uint64) (*model.CommunityMember, error) {
	var m model.CommunityMember
	err := r.DB.WithContext(ctx).First(&m, id).Error
	return &m, err
}

// RoleOf 无成员身份时返回 pkg.RoleNone
func (r *CommunityMemberRepository) RoleOf(ctx context.Context, userID, communityID uint64) (int, error) {
	var m model.CommunityMember
	err := r.DB.WithContext(ctx).
		Select("role").
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.RoleNone, nil
	}
	if err != nil {
		return pkg.RoleNone, err
	}
	return m.Role, nil
}

func (r *CommunityMemberRepository) IsMember(ctx context.Context, communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) Leave(ctx context.Context, communityID, userID uint64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{})
	return res.RowsAffected, res.Error
}

// Remove 管理员移除成员：校验与删除同事务，并写移除通知
func (r *CommunityMemberRepository) Remove(ctx context.Context, callerID, communityID, membershipID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &CommunityMemberRepository{DB: tx}
		callerRole, err := txRepo.RoleOf(ctx, callerID, communityID)
		if err != nil {
			return pkg.Internal(err)
		}
		if !pkg.Can(callerRole, pkg.ActionRemoveMember) {
			return pkg.Forbidden("admin role required")
		}
		var target model.CommunityMember
		if err := tx.First(&target, membershipID).Error; err != nil {
			return pkg.FromStore(err, "membership")
		}
		if target.CommunityID != communityID {
			return pkg.NotFound("membership")
		}
		if target.Role == model.RoleAdmin {
			return pkg.Forbidden("cannot remove an admin")
		}
		if target.UserID == callerID {
			return pkg.Forbidden("cannot remove yourself")
		}
		if err := tx.Delete(&model.CommunityMember{}, target.ID).Error; err != nil {
			return pkg.Internal(err)
		}
		return InsertOutbox(tx, model.EventMemberRemoved, callerID, target.UserID, communityID, nil)
	})
}

// UpdateRole 管理员调整成员角色；创建者的角色不可变，也不允许动另一位管理员
func (r *CommunityMemberRepository) UpdateRole(ctx context.Context, callerID, communityID, membershipID uint64, role int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &CommunityMemberRepository{DB: tx}
		callerRole, err := txRepo.RoleOf(ctx, callerID, communityID)
		if err != nil {
			return pkg.Internal(err)
		}
		if !pkg.Can(callerRole, pkg.ActionManageCommunity) {
			return pkg.Forbidden("admin role required")
		}
		var community model.Community
		if err := tx.First(&community, communityID).Error; err != nil {
			return pkg.FromStore(err, "community")
		}
		var target model.CommunityMember
		if err := tx.First(&target, membershipID).Error; err != nil {
			return pkg.FromStore(err, "membership")
		}
		if target.CommunityID != communityID {
			return pkg.NotFound("membership")
		}
		// 创建者永远持有 admin 成员行，社区不会失去最后一名管理员
		if target.UserID == community.CreatorID {
			return pkg.Forbidden("creator role is fixed")
		}
		if target.Role == model.RoleAdmin && target.UserID != callerID {
			return pkg.Forbidden("cannot change another admin's role")
		}
		return tx.Model(&model.CommunityMember{}).Where("id = ?", target.ID).Update("role", role).Error
	})
}

// ListByCommunity 游标分页成员列表
func (r *CommunityMemberRepository) ListByCommunity(ctx context.Context, communityID uint64, cursor uint64, limit int) ([]model.CommunityMember, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ?", communityID)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	var rows []model.CommunityMember
	if err := q.Order("id ASC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}
