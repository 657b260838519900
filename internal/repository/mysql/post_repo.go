package mysql

import (
	"context"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// PostFilter 可见性查询的筛选条件
type PostFilter struct {
	CommunityID uint64
	AuthorID    uint64
	Cursor      uint64
	Limit       int
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND status = ?", id, model.PostStatusNormal).Error
	return &post, err
}

// FindByIDAnyStatus 不过滤状态，用于区分"帖子从未存在"与"已删除"
func (r *PostRepository) FindByIDAnyStatus(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// ListVisible 可见性过滤下推到一条查询里，不在应用层先取再筛。
// 两层门：私有社区的帖子要求查看者持有成员行；过了社区门之后
// 按作者本人 / public / followers 关注边判定。private 只有作者可见。
func (r *PostRepository) ListVisible(ctx context.Context, viewerID uint64, f PostFilter) ([]model.Post, uint64, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("posts.status = ?", model.PostStatusNormal)
	if f.CommunityID > 0 {
		q = q.Where("posts.community_id = ?", f.CommunityID)
	}
	if f.AuthorID > 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.Cursor > 0 {
		q = q.Where("posts.id < ?", f.Cursor)
	}

	// 社区门：非成员对私有社区内的帖子一律不可见，与帖子自身可见性无关
	q = q.Where(`(posts.community_id = 0 OR NOT EXISTS (
		SELECT 1 FROM communities c
		WHERE c.id = posts.community_id AND c.visibility = ?
		  AND NOT EXISTS (
			SELECT 1 FROM community_members m
			WHERE m.community_id = c.id AND m.user_id = ?
		  )
	))`, model.CommunityPrivate, viewerID)

	// 帖子门：作者本人 / public / followers 且存在关注边
	q = q.Where(`(posts.author_id = ?
		OR posts.visibility = ?
		OR (posts.visibility = ? AND EXISTS (
			SELECT 1 FROM follow f
			WHERE f.follower_id = ? AND f.followee_id = posts.author_id AND f.status = 1
		))
	)`, viewerID, model.PostPublic, model.PostFollowers, viewerID)

	var rows []model.Post
	if err := q.Order("posts.id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// DeleteWithPermission 一步软删除：作者本人，或帖子所在社区的版主及以上。
// 幂等，已删除不报错。
func (r *PostRepository) DeleteWithPermission(ctx context.Context, postID, operatorID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Exec(`
		UPDATE posts SET status = ?
		WHERE id = ? AND status = ?
		  AND (author_id = ? OR EXISTS (
		       SELECT 1 FROM community_members m
		       WHERE m.community_id = posts.community_id AND m.user_id = ? AND m.role >= ?
		  ))`,
		model.PostStatusDeleted, postID, model.PostStatusNormal,
		operatorID, operatorID, model.RoleModerator,
	)
	return tx.RowsAffected, tx.Error
}
