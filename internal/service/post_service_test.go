package service

import (
	"testing"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunityPostRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewPostService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	outsider := createUser(t, db, "bob")

	community, err := communitySvc.Create(ctx, creator.ID, "club", "", false)
	require.NoError(t, err)

	_, err = svc.Create(ctx, outsider.ID, community.ID, "hello", "body", model.PostPublic)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	post, err := svc.Create(ctx, creator.ID, community.ID, "hello", "body", model.PostPublic)
	require.NoError(t, err)
	assert.Equal(t, community.ID, post.CommunityID)
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := testCtx()
	u := createUser(t, db, "alice")

	_, err := svc.Create(ctx, u.ID, 0, "", "body", model.PostPublic)
	assert.ErrorIs(t, err, pkg.ErrValidation)
	_, err = svc.Create(ctx, u.ID, 0, "hello", "body", 9)
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestFollowersVisibilityTogglesWithFollow(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	followSvc := NewFollowService(db)
	ctx := testCtx()
	author := createUser(t, db, "alice")
	viewer := createUser(t, db, "bob")

	post, err := postSvc.Create(ctx, author.ID, 0, "for followers", "body", model.PostFollowers)
	require.NoError(t, err)

	ok, err := postSvc.CanView(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = followSvc.Follow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	ok, err = postSvc.CanView(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 取关后立即失去可见性
	_, err = followSvc.Unfollow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	ok, err = postSvc.CanView(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrivatePostAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	followSvc := NewFollowService(db)
	ctx := testCtx()
	author := createUser(t, db, "alice")
	follower := createUser(t, db, "bob")

	_, err := followSvc.Follow(ctx, follower.ID, author.ID)
	require.NoError(t, err)

	post, err := postSvc.Create(ctx, author.ID, 0, "draft", "body", model.PostPrivate)
	require.NoError(t, err)

	// 连粉丝也看不到私有帖
	ok, err := postSvc.CanView(ctx, follower.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = postSvc.CanView(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

// 私有社区对非成员整体不透明：即便帖子本身是 public
func TestPrivateCommunityOpaqueToNonMembers(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewPostService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	outsider := createUser(t, db, "bob")

	community, err := communitySvc.Create(ctx, creator.ID, "secret-club", "", true)
	require.NoError(t, err)
	post, err := svc.Create(ctx, creator.ID, community.ID, "inside", "body", model.PostPublic)
	require.NoError(t, err)

	ok, err := svc.CanView(ctx, outsider.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Get 统一报 NotFound，不泄露存在性
	_, err = svc.Get(ctx, outsider.ID, post.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	rows, _, err := svc.ListVisible(ctx, outsider.ID, mysql.PostFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// 成员正常可见
	got, err := svc.Get(ctx, creator.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestListVisibleMixed(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	followSvc := NewFollowService(db)
	ctx := testCtx()
	author := createUser(t, db, "alice")
	viewer := createUser(t, db, "bob")

	pub, err := postSvc.Create(ctx, author.ID, 0, "public", "", model.PostPublic)
	require.NoError(t, err)
	priv, err := postSvc.Create(ctx, author.ID, 0, "private", "", model.PostPrivate)
	require.NoError(t, err)
	fol, err := postSvc.Create(ctx, author.ID, 0, "followers", "", model.PostFollowers)
	require.NoError(t, err)

	ids := func(rows []model.Post) []uint64 {
		out := make([]uint64, 0, len(rows))
		for _, p := range rows {
			out = append(out, p.ID)
		}
		return out
	}

	rows, _, err := postSvc.ListVisible(ctx, viewer.ID, mysql.PostFilter{AuthorID: author.ID, Limit: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{pub.ID}, ids(rows))

	_, err = followSvc.Follow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	rows, _, err = postSvc.ListVisible(ctx, viewer.ID, mysql.PostFilter{AuthorID: author.ID, Limit: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{pub.ID, fol.ID}, ids(rows))

	// 作者看自己看得到全部
	rows, _, err = postSvc.ListVisible(ctx, author.ID, mysql.PostFilter{AuthorID: author.ID, Limit: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{pub.ID, priv.ID, fol.ID}, ids(rows))
}

func TestDeletePostPermissions(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewPostService(db)
	ctx := testCtx()
	admin := createUser(t, db, "alice")
	author := createUser(t, db, "bob")
	outsider := createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, admin.ID, "club", "", false)
	require.NoError(t, err)
	_, err = communitySvc.Join(ctx, author.ID, community.ID)
	require.NoError(t, err)

	post, err := svc.Create(ctx, author.ID, community.ID, "hello", "", model.PostPublic)
	require.NoError(t, err)

	// 无关用户不可删
	assert.ErrorIs(t, svc.Delete(ctx, outsider.ID, post.ID), pkg.ErrForbidden)

	// 作者可删，重复删除幂等
	require.NoError(t, svc.Delete(ctx, author.ID, post.ID))
	require.NoError(t, svc.Delete(ctx, author.ID, post.ID))

	// 社区管理员可删他人帖
	post2, err := svc.Create(ctx, author.ID, community.ID, "hello2", "", model.PostPublic)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, admin.ID, post2.ID))

	// 从未存在的帖子不是幂等成功，报 NotFound
	assert.ErrorIs(t, svc.Delete(ctx, author.ID, 99999), pkg.ErrNotFound)
}
