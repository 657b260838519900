package service

import (
	"context"
	"time"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type EventService struct {
	repo       *mysql.EventRepository
	memberRepo *mysql.CommunityMemberRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		repo:       &mysql.EventRepository{DB: db},
		memberRepo: &mysql.CommunityMemberRepository{DB: db},
	}
}

// Create 任一成员可创建活动，创建者随后对该活动持有版主级权限
func (s *EventService) Create(ctx context.Context, userID, communityID uint64, title, desc string, startsAt time.Time) (*model.CommunityEvent, error) {
	if title == "" {
		return nil, pkg.Invalid("title required")
	}
	role, err := s.memberRepo.RoleOf(ctx, userID, communityID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	if role == pkg.RoleNone {
		return nil, pkg.Forbidden("not a member")
	}
	ev := &model.CommunityEvent{
		CommunityID: communityID,
		CreatorID:   userID,
		Title:       title,
		Description: desc,
		StartsAt:    startsAt,
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, pkg.Internal(err)
	}
	return ev, nil
}

// Update 版主/管理员，或活动创建者本人
func (s *EventService) Update(ctx context.Context, userID, eventID uint64, title, desc *string, startsAt *time.Time) error {
	ev, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return pkg.FromStore(err, "event")
	}
	if err := s.authorize(ctx, userID, ev); err != nil {
		return err
	}
	attrs := map[string]any{}
	if title != nil {
		if *title == "" {
			return pkg.Invalid("title required")
		}
		attrs["title"] = *title
	}
	if desc != nil {
		attrs["description"] = *desc
	}
	if startsAt != nil {
		attrs["starts_at"] = *startsAt
	}
	if len(attrs) == 0 {
		return nil
	}
	if err := s.repo.Update(ctx, eventID, attrs); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// Delete 版主/管理员，或活动创建者本人
func (s *EventService) Delete(ctx context.Context, userID, eventID uint64) error {
	ev, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return pkg.FromStore(err, "event")
	}
	if err := s.authorize(ctx, userID, ev); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

func (s *EventService) ListByCommunity(ctx context.Context, communityID uint64, page, size int) ([]model.CommunityEvent, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	list, err := s.repo.ListByCommunity(ctx, communityID, (page-1)*size, size)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return list, nil
}

func (s *EventService) authorize(ctx context.Context, userID uint64, ev *model.CommunityEvent) error {
	role, err := s.memberRepo.RoleOf(ctx, userID, ev.CommunityID)
	if err != nil {
		return pkg.Internal(err)
	}
	if !pkg.CanWithOwnership(role, pkg.ActionManageEvent, ev.CreatorID == userID) {
		return pkg.Forbidden("moderator role or event ownership required")
	}
	return nil
}
