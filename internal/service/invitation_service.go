package service

import (
	"context"
	"strings"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type InvitationService struct {
	repo     *mysql.InvitationRepository
	userRepo *mysql.UserRepository
}

func NewInvitationService(db *gorm.DB) *InvitationService {
	return &InvitationService{
		repo:     &mysql.InvitationRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// Invite 按用户名邀请。邀请门槛取统一策略：任一成员即可邀请。
func (s *InvitationService) Invite(ctx context.Context, inviterID, communityID uint64, inviteeUsername string) (*model.CommunityInvitation, error) {
	inviteeUsername = strings.TrimSpace(inviteeUsername)
	if inviteeUsername == "" {
		return nil, pkg.Invalid("invitee username required")
	}
	invitee, err := s.userRepo.FindByUsername(inviteeUsername)
	if err != nil {
		return nil, pkg.FromStore(err, "user")
	}
	if invitee.ID == inviterID {
		return nil, pkg.Conflict("cannot invite yourself")
	}
	return s.repo.Invite(ctx, communityID, inviterID, invitee.ID)
}

// Respond 受邀人应答
func (s *InvitationService) Respond(ctx context.Context, invitationID, calleeID uint64, accept bool) (*model.CommunityInvitation, error) {
	if invitationID == 0 {
		return nil, pkg.Invalid("invalid invitation id")
	}
	return s.repo.Respond(ctx, invitationID, calleeID, accept)
}

// Revoke 受邀人或版主/管理员撤销
func (s *InvitationService) Revoke(ctx context.Context, invitationID, callerID uint64) error {
	if invitationID == 0 {
		return pkg.Invalid("invalid invitation id")
	}
	return s.repo.Revoke(ctx, invitationID, callerID)
}

// ListMine 我收到的待处理邀请
func (s *InvitationService) ListMine(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.CommunityInvitation, uint64, error) {
	rows, next, err := s.repo.ListPendingForUser(ctx, userID, cursor, limit)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	return rows, next, nil
}
