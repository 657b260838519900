package service

import (
	"context"
	"errors"
	"strings"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommunityService struct {
	repo        *mysql.CommunityRepository
	memberRepo  *mysql.CommunityMemberRepository
	requestRepo *mysql.JoinRequestRepository
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{
		repo:        &mysql.CommunityRepository{DB: db},
		memberRepo:  &mysql.CommunityMemberRepository{DB: db},
		requestRepo: &mysql.JoinRequestRepository{DB: db},
	}
}

// JoinResult 公开社区直接入会，私有社区转加入申请，二者互斥
type JoinResult struct {
	Membership  *model.CommunityMember `json:"membership,omitempty"`
	JoinRequest *model.JoinRequest     `json:"join_request,omitempty"`
}

func (s *CommunityService) Create(ctx context.Context, creatorID uint64, name, desc string, private bool) (*model.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkg.Invalid("community name required")
	}
	if len(name) > 64 {
		return nil, pkg.Invalid("community name too long")
	}
	visibility := int8(model.CommunityPublic)
	if private {
		visibility = model.CommunityPrivate
	}
	community := &model.Community{
		Name:        name,
		Description: desc,
		Visibility:  visibility,
		CreatorID:   creatorID,
	}
	return s.repo.Create(ctx, community)
}

// Join 公开社区创建 user 角色成员；私有社区永远不在这里建成员，改走申请流程
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint64) (*JoinResult, error) {
	community, err := s.repo.FindByID(ctx, communityID)
	if err != nil {
		return nil, pkg.FromStore(err, "community")
	}
	if community.Visibility == model.CommunityPrivate {
		req, err := s.requestRepo.Submit(ctx, communityID, userID)
		if err != nil {
			return nil, err
		}
		return &JoinResult{JoinRequest: req}, nil
	}
	member := &model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        model.RoleUser,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkg.Conflict("already a member")
		}
		return nil, pkg.Internal(err)
	}
	return &JoinResult{Membership: member}, nil
}

// Leave 创建者必须先转让社区才能退出
func (s *CommunityService) Leave(ctx context.Context, userID, communityID uint64) error {
	community, err := s.repo.FindByID(ctx, communityID)
	if err != nil {
		return pkg.FromStore(err, "community")
	}
	if community.CreatorID == userID {
		return pkg.Forbidden("creator cannot leave, transfer ownership first")
	}
	affected, err := s.memberRepo.Leave(ctx, communityID, userID)
	if err != nil {
		return pkg.Internal(err)
	}
	if affected == 0 {
		return pkg.NotFound("membership")
	}
	return nil
}

// RemoveMember 管理员移除成员，不能移除管理员也不能移除自己
func (s *CommunityService) RemoveMember(ctx context.Context, callerID, communityID, membershipID uint64) error {
	return s.memberRepo.Remove(ctx, callerID, communityID, membershipID)
}

// UpdateMemberRole 管理员调整成员角色
func (s *CommunityService) UpdateMemberRole(ctx context.Context, callerID, communityID, membershipID uint64, role int) error {
	if role < model.RoleUser || role > model.RoleAdmin {
		return pkg.Invalid("invalid role")
	}
	return s.memberRepo.UpdateRole(ctx, callerID, communityID, membershipID, role)
}

// RoleOf 无成员身份返回 pkg.RoleNone
func (s *CommunityService) RoleOf(ctx context.Context, userID, communityID uint64) (int, error) {
	role, err := s.memberRepo.RoleOf(ctx, userID, communityID)
	if err != nil {
		return pkg.RoleNone, pkg.Internal(err)
	}
	return role, nil
}

func (s *CommunityService) Get(ctx context.Context, id uint64) (*model.Community, error) {
	community, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkg.FromStore(err, "community")
	}
	return community, nil
}

func (s *CommunityService) List(ctx context.Context, page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	list, err := s.repo.List(ctx, offset, size)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return list, nil
}

// UpdateSettings 社区设置仅管理员可改
func (s *CommunityService) UpdateSettings(ctx context.Context, callerID, communityID uint64, desc *string, private *bool) error {
	role, err := s.memberRepo.RoleOf(ctx, callerID, communityID)
	if err != nil {
		return pkg.Internal(err)
	}
	if !pkg.Can(role, pkg.ActionManageCommunity) {
		return pkg.Forbidden("admin role required")
	}
	attrs := map[string]any{}
	if desc != nil {
		attrs["description"] = *desc
	}
	if private != nil {
		visibility := int8(model.CommunityPublic)
		if *private {
			visibility = model.CommunityPrivate
		}
		attrs["visibility"] = visibility
	}
	if len(attrs) == 0 {
		return nil
	}
	if err := s.repo.Update(ctx, communityID, attrs); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// Delete 删除社区仅管理员可做
func (s *CommunityService) Delete(ctx context.Context, callerID, communityID uint64) error {
	role, err := s.memberRepo.RoleOf(ctx, callerID, communityID)
	if err != nil {
		return pkg.Internal(err)
	}
	if !pkg.Can(role, pkg.ActionManageCommunity) {
		return pkg.Forbidden("admin role required")
	}
	if err := s.repo.Delete(ctx, communityID); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// ListMembers 成员列表
func (s *CommunityService) ListMembers(ctx context.Context, communityID uint64, cursor uint64, limit int) ([]model.CommunityMember, uint64, error) {
	rows, next, err := s.memberRepo.ListByCommunity(ctx, communityID, cursor, limit)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	return rows, next, nil
}
