package mysql

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"gorm.io/gorm"
)

type JoinRequestRepository struct {
	DB *gorm.DB
}

// Submit 提交加入申请。已是成员或已有 pending 申请都算冲突；
// 被拒绝过的申请翻回 pending 重新排队。
func (r *JoinRequestRepository) Submit(ctx context.Context, communityID, userID uint64) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mRepo := &CommunityMemberRepository{DB: tx}
		isMember, err := mRepo.IsMember(ctx, communityID, userID)
		if err != nil {
			return pkg.Internal(err)
		}
		if isMember {
			return pkg.Conflict("already a member")
		}

		err = tx.Where("community_id = ? AND user_id = ?", communityID, userID).First(&req).Error
		switch {
		case err == nil:
			if req.Status == model.RequestPending {
				return pkg.Conflict("join request already pending")
			}
			if err := tx.Model(&model.JoinRequest{}).
				Where("id = ?", req.ID).
				Update("status", model.RequestPending).Error; err != nil {
				return pkg.Internal(err)
			}
			req.Status = model.RequestPending
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			req = model.JoinRequest{
				CommunityID: communityID,
				UserID:      userID,
				Status:      model.RequestPending,
			}
			if err := tx.Create(&req).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return pkg.Conflict("join request already pending")
				}
				return pkg.Internal(err)
			}
			return nil
		default:
			return pkg.Internal(err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Review 版主或管理员审批。通过时在同一事务内幂等补建成员行：
// 用户可能已通过邀请并发入会，此时只落申请状态，不产生重复成员。
func (r *JoinRequestRepository) Review(ctx context.Context, requestID, reviewerID uint64, accept bool) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			return pkg.FromStore(err, "join request")
		}
		mRepo := &CommunityMemberRepository{DB: tx}
		role, err := mRepo.RoleOf(ctx, reviewerID, req.CommunityID)
		if err != nil {
			return pkg.Internal(err)
		}
		if !pkg.Can(role, pkg.ActionReviewRequest) {
			return pkg.Forbidden("moderator role required")
		}
		if req.Status != model.RequestPending {
			return pkg.InvalidState("join request already resolved")
		}

		if !accept {
			if err := tx.Model(&model.JoinRequest{}).
				Where("id = ?", req.ID).
				Update("status", model.RequestRejected).Error; err != nil {
				return pkg.Internal(err)
			}
			req.Status = model.RequestRejected
			return nil
		}

		if err := mRepo.JoinIdempotent(&model.CommunityMember{
			CommunityID: req.CommunityID,
			UserID:      req.UserID,
			Role:        model.RoleUser,
		}); err != nil {
			return pkg.Internal(err)
		}
		if err := tx.Model(&model.JoinRequest{}).
			Where("id = ?", req.ID).
			Update("status", model.RequestAccepted).Error; err != nil {
			return pkg.Internal(err)
		}
		req.Status = model.RequestAccepted
		return InsertOutbox(tx, model.EventJoinApproved, reviewerID, req.UserID, req.CommunityID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Cancel 仅申请人本人可撤销 pending 申请
func (r *JoinRequestRepository) Cancel(ctx context.Context, requestID, callerID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.JoinRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			return pkg.FromStore(err, "join request")
		}
		if req.UserID != callerID {
			return pkg.Forbidden("only the requester may cancel")
		}
		if req.Status != model.RequestPending {
			return pkg.InvalidState("join request already resolved")
		}
		if err := tx.Delete(&model.JoinRequest{}, req.ID).Error; err != nil {
			return pkg.Internal(err)
		}
		return nil
	})
}

func (r *JoinRequestRepository) FindByID(ctx context.Context, id uint64) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.DB.WithContext(ctx).First(&req, id).Error
	return &req, err
}

// ListPendingByCommunity 待审列表
func (r *JoinRequestRepository) ListPendingByCommunity(ctx context.Context, communityID uint64, cursor uint64, limit int) ([]model.JoinRequest, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.JoinRequest{}).
		Where("community_id = ? AND status = ?", communityID, model.RequestPending)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	var rows []model.JoinRequest
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
