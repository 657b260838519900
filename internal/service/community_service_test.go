package service

import (
	"testing"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunityCreatesAdminMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	u := createUser(t, db, "alice")

	community, err := svc.Create(ctx, u.ID, "design-club", "a club", false)
	require.NoError(t, err)
	assert.Equal(t, u.ID, community.CreatorID)

	role, err := svc.RoleOf(ctx, u.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestCreateCommunityNameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	u := createUser(t, db, "alice")

	_, err := svc.Create(ctx, u.ID, "design-club", "", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, u.ID, "design-club", "", false)
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestCreateCommunityNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	u := createUser(t, db, "alice")

	_, err := svc.Create(ctx, u.ID, "Design-Club", "", false)
	require.NoError(t, err)

	// 大小写变体同样冲突，唯一索引建在规范化键上
	_, err = svc.Create(ctx, u.ID, "design-club", "", false)
	assert.ErrorIs(t, err, pkg.ErrConflict)
	_, err = svc.Create(ctx, u.ID, "DESIGN-CLUB", "", false)
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestCreateCommunityValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)

	_, err := svc.Create(testCtx(), 1, "   ", "", false)
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestJoinPublicCommunity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	joiner := createUser(t, db, "bob")

	community, err := svc.Create(ctx, creator.ID, "open-club", "", false)
	require.NoError(t, err)

	result, err := svc.Join(ctx, joiner.ID, community.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Membership)
	assert.Nil(t, result.JoinRequest)
	assert.Equal(t, model.RoleUser, result.Membership.Role)

	// 重复加入是冲突
	_, err = svc.Join(ctx, joiner.ID, community.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestJoinPrivateCommunityCreatesRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	joiner := createUser(t, db, "bob")

	community, err := svc.Create(ctx, creator.ID, "secret-club", "", true)
	require.NoError(t, err)

	result, err := svc.Join(ctx, joiner.ID, community.ID)
	require.NoError(t, err)
	require.NotNil(t, result.JoinRequest)
	assert.Nil(t, result.Membership)
	assert.EqualValues(t, model.RequestPending, result.JoinRequest.Status)

	// 私有社区的 join 永远不直接建成员
	assert.EqualValues(t, 0, memberCount(t, db, community.ID, joiner.ID))
}

func TestLeaveCreatorForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")

	community, err := svc.Create(ctx, creator.ID, "club", "", false)
	require.NoError(t, err)

	err = svc.Leave(ctx, creator.ID, community.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	// 创建者的 admin 成员行保持不动
	assert.EqualValues(t, 1, memberCount(t, db, community.ID, creator.ID))
}

func TestLeaveAndNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	member := createUser(t, db, "bob")

	community, err := svc.Create(ctx, creator.ID, "club", "", false)
	require.NoError(t, err)
	_, err = svc.Join(ctx, member.ID, community.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(ctx, member.ID, community.ID))
	assert.ErrorIs(t, svc.Leave(ctx, member.ID, community.ID), pkg.ErrNotFound)
}

func TestRemoveMemberRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	admin := createUser(t, db, "alice")
	mod := createUser(t, db, "bob")
	user := createUser(t, db, "carol")

	community, err := svc.Create(ctx, admin.ID, "club", "", false)
	require.NoError(t, err)
	_, err = svc.Join(ctx, mod.ID, community.ID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, user.ID, community.ID)
	require.NoError(t, err)

	var modMembership, userMembership, adminMembership model.CommunityMember
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, mod.ID).First(&modMembership).Error)
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, user.ID).First(&userMembership).Error)
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, admin.ID).First(&adminMembership).Error)
	require.NoError(t, svc.UpdateMemberRole(ctx, admin.ID, community.ID, modMembership.ID, model.RoleModerator))

	// 版主不能移除成员，只有管理员可以
	err = svc.RemoveMember(ctx, mod.ID, community.ID, userMembership.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// 管理员不能移除自己，也不能移除另一位管理员
	err = svc.RemoveMember(ctx, admin.ID, community.ID, adminMembership.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, svc.RemoveMember(ctx, admin.ID, community.ID, userMembership.ID))
	assert.EqualValues(t, 0, memberCount(t, db, community.ID, user.ID))
	assert.Len(t, outboxEvents(t, db, model.EventMemberRemoved), 1)
}

func TestUpdateMemberRoleGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	admin := createUser(t, db, "alice")
	user := createUser(t, db, "bob")

	community, err := svc.Create(ctx, admin.ID, "club", "", false)
	require.NoError(t, err)
	_, err = svc.Join(ctx, user.ID, community.ID)
	require.NoError(t, err)

	var userMembership model.CommunityMember
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, user.ID).First(&userMembership).Error)

	// 普通成员无权调整角色
	err = svc.UpdateMemberRole(ctx, user.ID, community.ID, userMembership.ID, model.RoleModerator)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, svc.UpdateMemberRole(ctx, admin.ID, community.ID, userMembership.ID, model.RoleModerator))
	role, err := svc.RoleOf(ctx, user.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, role)
}

func TestCreatorRoleCannotBeChanged(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	other := createUser(t, db, "bob")

	community, err := svc.Create(ctx, creator.ID, "club", "", false)
	require.NoError(t, err)
	_, err = svc.Join(ctx, other.ID, community.ID)
	require.NoError(t, err)

	var creatorMembership, otherMembership model.CommunityMember
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, creator.ID).First(&creatorMembership).Error)
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, other.ID).First(&otherMembership).Error)

	// 创建者不能给自己降级，社区始终保有一名管理员
	err = svc.UpdateMemberRole(ctx, creator.ID, community.ID, creatorMembership.ID, model.RoleUser)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	role, err := svc.RoleOf(ctx, creator.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	// 非创建者的管理员可以自降
	require.NoError(t, svc.UpdateMemberRole(ctx, creator.ID, community.ID, otherMembership.ID, model.RoleAdmin))
	require.NoError(t, svc.UpdateMemberRole(ctx, other.ID, community.ID, otherMembership.ID, model.RoleUser))
	role, err = svc.RoleOf(ctx, other.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, role)
}

func TestUpdateSettingsAndDeleteRequireAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	admin := createUser(t, db, "alice")
	user := createUser(t, db, "bob")

	community, err := svc.Create(ctx, admin.ID, "club", "", false)
	require.NoError(t, err)
	_, err = svc.Join(ctx, user.ID, community.ID)
	require.NoError(t, err)

	private := true
	assert.ErrorIs(t, svc.UpdateSettings(ctx, user.ID, community.ID, nil, &private), pkg.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, community.ID), pkg.ErrForbidden)

	require.NoError(t, svc.UpdateSettings(ctx, admin.ID, community.ID, nil, &private))
	got, err := svc.Get(ctx, community.ID)
	require.NoError(t, err)
	assert.EqualValues(t, model.CommunityPrivate, got.Visibility)

	require.NoError(t, svc.Delete(ctx, admin.ID, community.ID))
	_, err = svc.Get(ctx, community.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestRoleOfNonMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	outsider := createUser(t, db, "bob")

	community, err := svc.Create(ctx, creator.ID, "club", "", false)
	require.NoError(t, err)

	role, err := svc.RoleOf(ctx, outsider.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.RoleNone, role)
}
