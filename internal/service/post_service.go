package service

import (
	"context"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo          *mysql.PostRepository
	communityRepo *mysql.CommunityRepository
	memberRepo    *mysql.CommunityMemberRepository
	followRepo    *mysql.FollowRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo:          &mysql.PostRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db},
		memberRepo:    &mysql.CommunityMemberRepository{DB: db},
		followRepo:    &mysql.FollowRepository{DB: db},
	}
}

// Create 社区帖要求发帖人是成员；communityID=0 为个人帖
func (s *PostService) Create(ctx context.Context, userID, communityID uint64, title, content string, visibility int8) (*model.Post, error) {
	if title == "" {
		return nil, pkg.Invalid("title required")
	}
	if visibility < model.PostPublic || visibility > model.PostFollowers {
		return nil, pkg.Invalid("invalid visibility")
	}
	if communityID > 0 {
		role, err := s.memberRepo.RoleOf(ctx, userID, communityID)
		if err != nil {
			return nil, pkg.Internal(err)
		}
		if !pkg.Can(role, pkg.ActionPostInCommunity) {
			return nil, pkg.Forbidden("not a member")
		}
	}
	post := &model.Post{
		CommunityID: communityID,
		AuthorID:    userID,
		Title:       title,
		Content:     content,
		Visibility:  visibility,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

// CanView 单帖可见性判定，两层门与批量查询语义一致
func (s *PostService) CanView(ctx context.Context, viewerID, postID uint64) (bool, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return false, pkg.FromStore(err, "post")
	}
	// 社区门
	if post.CommunityID > 0 {
		community, err := s.communityRepo.FindByID(ctx, post.CommunityID)
		if err != nil {
			return false, pkg.FromStore(err, "post")
		}
		if community.Visibility == model.CommunityPrivate {
			isMember, err := s.memberRepo.IsMember(ctx, post.CommunityID, viewerID)
			if err != nil {
				return false, pkg.Internal(err)
			}
			if !isMember {
				return false, nil
			}
		}
	}
	// 帖子门
	if post.AuthorID == viewerID {
		return true, nil
	}
	switch post.Visibility {
	case model.PostPublic:
		return true, nil
	case model.PostFollowers:
		following, err := s.followRepo.IsFollowing(ctx, viewerID, post.AuthorID)
		if err != nil {
			return false, pkg.Internal(err)
		}
		return following, nil
	default: // private 仅作者可见
		return false, nil
	}
}

// Get 读单帖，不可见与不存在统一返回 NotFound，不泄露私有实体的存在性
func (s *PostService) Get(ctx context.Context, viewerID, postID uint64) (*model.Post, error) {
	ok, err := s.CanView(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkg.NotFound("post")
	}
	return s.repo.FindByID(ctx, postID)
}

// ListVisible 批量可见性过滤，谓词整体下推到存储层
func (s *PostService) ListVisible(ctx context.Context, viewerID uint64, f mysql.PostFilter) ([]model.Post, uint64, error) {
	rows, next, err := s.repo.ListVisible(ctx, viewerID, f)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	return rows, next, nil
}

// Delete 作者或社区版主及以上可删；幂等，已删帖不报错
func (s *PostService) Delete(ctx context.Context, userID, postID uint64) error {
	affected, err := s.repo.DeleteWithPermission(ctx, postID, userID)
	if err != nil {
		return pkg.Internal(err)
	}
	if affected == 0 {
		// 三种落空：从未存在报 NotFound，已删除幂等成功，仍可读是权限问题
		post, err := s.repo.FindByIDAnyStatus(ctx, postID)
		if err != nil {
			return pkg.FromStore(err, "post")
		}
		if post.Status != model.PostStatusNormal {
			return nil
		}
		return pkg.Forbidden("no permission")
	}
	return nil
}
