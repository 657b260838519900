package service

import (
	"context"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type JoinRequestService struct {
	repo          *mysql.JoinRequestRepository
	communityRepo *mysql.CommunityRepository
	memberRepo    *mysql.CommunityMemberRepository
}

func NewJoinRequestService(db *gorm.DB) *JoinRequestService {
	return &JoinRequestService{
		repo:          &mysql.JoinRequestRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db},
		memberRepo:    &mysql.CommunityMemberRepository{DB: db},
	}
}

// Submit 只有私有社区接受加入申请，公开社区走直接入会
func (s *JoinRequestService) Submit(ctx context.Context, userID, communityID uint64) (*model.JoinRequest, error) {
	community, err := s.communityRepo.FindByID(ctx, communityID)
	if err != nil {
		return nil, pkg.FromStore(err, "community")
	}
	if community.Visibility != model.CommunityPrivate {
		return nil, pkg.Invalid("community is public, join directly")
	}
	return s.repo.Submit(ctx, communityID, userID)
}

// Review 版主/管理员审批申请
func (s *JoinRequestService) Review(ctx context.Context, requestID, reviewerID uint64, accept bool) (*model.JoinRequest, error) {
	if requestID == 0 {
		return nil, pkg.Invalid("invalid request id")
	}
	return s.repo.Review(ctx, requestID, reviewerID, accept)
}

// Cancel 申请人撤销
func (s *JoinRequestService) Cancel(ctx context.Context, requestID, callerID uint64) error {
	if requestID == 0 {
		return pkg.Invalid("invalid request id")
	}
	return s.repo.Cancel(ctx, requestID, callerID)
}

// ListPending 待审列表，只对版主/管理员开放
func (s *JoinRequestService) ListPending(ctx context.Context, callerID, communityID uint64, cursor uint64, limit int) ([]model.JoinRequest, uint64, error) {
	role, err := s.memberRepo.RoleOf(ctx, callerID, communityID)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	if !pkg.Can(role, pkg.ActionReviewRequest) {
		return nil, 0, pkg.Forbidden("moderator role required")
	}
	rows, next, err := s.repo.ListPendingByCommunity(ctx, communityID, cursor, limit)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	return rows, next, nil
}
