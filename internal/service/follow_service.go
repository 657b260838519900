package service

import (
	"context"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo *mysql.FollowRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo: &mysql.FollowRepository{DB: db},
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, pkg.Invalid("invalid user id")
	}
	if followerID == followeeID {
		return false, pkg.Conflict("cannot follow self")
	}
	changed, err := s.repo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return false, pkg.Internal(err)
	}
	return changed, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, pkg.Invalid("invalid user id")
	}
	if followerID == followeeID {
		return false, pkg.Conflict("cannot unfollow self")
	}
	changed, err := s.repo.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return false, pkg.Internal(err)
	}
	return changed, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, pkg.Invalid("invalid user id")
	}
	ok, err := s.repo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return false, pkg.Internal(err)
	}
	return ok, nil
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowings(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowers(ctx, userID, cursor, limit)
}
