package mysql

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

// Invite 任一成员可发出邀请。受邀人已是成员或已有 pending 邀请算冲突；
// 被拒绝过的邀请翻回 pending 并记录新的邀请人。
func (r *InvitationRepository) Invite(ctx context.Context, communityID, inviterID, inviteeID uint64) (*model.CommunityInvitation, error) {
	var inv model.CommunityInvitation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mRepo := &CommunityMemberRepository{DB: tx}
		inviterIsMember, err := mRepo.IsMember(ctx, communityID, inviterID)
		if err != nil {
			return pkg.Internal(err)
		}
		if !inviterIsMember {
			return pkg.Forbidden("only members may invite")
		}
		inviteeIsMember, err := mRepo.IsMember(ctx, communityID, inviteeID)
		if err != nil {
			return pkg.Internal(err)
		}
		if inviteeIsMember {
			return pkg.Conflict("already a member")
		}

		err = tx.Where("community_id = ? AND invitee_id = ?", communityID, inviteeID).First(&inv).Error
		switch {
		case err == nil:
			if inv.Status == model.RequestPending {
				return pkg.Conflict("invitation already pending")
			}
			if err := tx.Model(&model.CommunityInvitation{}).
				Where("id = ?", inv.ID).
				Updates(map[string]any{"status": model.RequestPending, "inviter_id": inviterID}).Error; err != nil {
				return pkg.Internal(err)
			}
			inv.Status = model.RequestPending
			inv.InviterID = inviterID
		case errors.Is(err, gorm.ErrRecordNotFound):
			inv = model.CommunityInvitation{
				CommunityID: communityID,
				InviterID:   inviterID,
				InviteeID:   inviteeID,
				Status:      model.RequestPending,
			}
			if err := tx.Create(&inv).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return pkg.Conflict("invitation already pending")
				}
				return pkg.Internal(err)
			}
		default:
			return pkg.Internal(err)
		}
		return InsertOutbox(tx, model.EventInvitationSent, inviterID, inviteeID, communityID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Respond 仅受邀人可应答。接受时与申请审批同一套幂等建成员逻辑，
// 两条路径并发通过也只会有一行成员。
func (r *InvitationRepository) Respond(ctx context.Context, invitationID, calleeID uint64, accept bool) (*model.CommunityInvitation, error) {
	var inv model.CommunityInvitation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, invitationID).Error; err != nil {
			return pkg.FromStore(err, "invitation")
		}
		if inv.InviteeID != calleeID {
			return pkg.Forbidden("only the invitee may respond")
		}
		if inv.Status != model.RequestPending {
			return pkg.InvalidState("invitation already resolved")
		}

		if !accept {
			if err := tx.Model(&model.CommunityInvitation{}).
				Where("id = ?", inv.ID).
				Update("status", model.RequestRejected).Error; err != nil {
				return pkg.Internal(err)
			}
			inv.Status = model.RequestRejected
			return nil
		}

		mRepo := &CommunityMemberRepository{DB: tx}
		if err := mRepo.JoinIdempotent(&model.CommunityMember{
			CommunityID: inv.CommunityID,
			UserID:      inv.InviteeID,
			Role:        model.RoleUser,
		}); err != nil {
			return pkg.Internal(err)
		}
		if err := tx.Model(&model.CommunityInvitation{}).
			Where("id = ?", inv.ID).
			Update("status", model.RequestAccepted).Error; err != nil {
			return pkg.Internal(err)
		}
		inv.Status = model.RequestAccepted
		return InsertOutbox(tx, model.EventInvitationAccepted, calleeID, inv.InviterID, inv.CommunityID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Revoke 受邀人本人，或社区的版主/管理员可撤销
func (r *InvitationRepository) Revoke(ctx context.Context, invitationID, callerID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv model.CommunityInvitation
		if err := tx.First(&inv, invitationID).Error; err != nil {
			return pkg.FromStore(err, "invitation")
		}
		if inv.InviteeID != callerID {
			mRepo := &CommunityMemberRepository{DB: tx}
			role, err := mRepo.RoleOf(ctx, callerID, inv.CommunityID)
			if err != nil {
				return pkg.Internal(err)
			}
			if !pkg.Can(role, pkg.ActionReviewRequest) {
				return pkg.Forbidden("moderator role required")
			}
		}
		if err := tx.Delete(&model.CommunityInvitation{}, inv.ID).Error; err != nil {
			return pkg.Internal(err)
		}
		return nil
	})
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint64) (*model.CommunityInvitation, error) {
	var inv model.CommunityInvitation
	err := r.DB.WithContext(ctx).First(&inv, id).Error
	return &inv, err
}

// ListPendingForUser 我收到的待处理邀请
func (r *InvitationRepository) ListPendingForUser(ctx context.Context, inviteeID uint64, cursor uint64, limit int) ([]model.CommunityInvitation, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.CommunityInvitation{}).
		Where("invitee_id = ? AND status = ?", inviteeID, model.RequestPending)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	var rows []model.CommunityInvitation
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
