package service

import (
	"testing"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteByUsername(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	invitee := createUser(t, db, "bob")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", true)
	require.NoError(t, err)

	inv, err := svc.Invite(ctx, creator.ID, community.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, invitee.ID, inv.InviteeID)
	assert.Equal(t, creator.ID, inv.InviterID)
	assert.EqualValues(t, model.RequestPending, inv.Status)
	assert.Len(t, outboxEvents(t, db, model.EventInvitationSent), 1)

	// 未知用户名
	_, err = svc.Invite(ctx, creator.ID, community.ID, "nobody")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// 不能邀请自己
	_, err = svc.Invite(ctx, creator.ID, community.ID, "alice")
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestInviteRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	outsider := createUser(t, db, "bob")
	createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", true)
	require.NoError(t, err)

	_, err = svc.Invite(ctx, outsider.ID, community.ID, "carol")
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestInviteConflicts(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	member := createUser(t, db, "bob")
	createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", false)
	require.NoError(t, err)
	_, err = communitySvc.Join(ctx, member.ID, community.ID)
	require.NoError(t, err)

	// 受邀人已是成员
	_, err = svc.Invite(ctx, creator.ID, community.ID, "bob")
	assert.ErrorIs(t, err, pkg.ErrConflict)

	// 已有 pending 邀请
	_, err = svc.Invite(ctx, creator.ID, community.ID, "carol")
	require.NoError(t, err)
	_, err = svc.Invite(ctx, member.ID, community.ID, "carol")
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestReinviteAfterRejectFlipsPending(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	member := createUser(t, db, "bob")
	invitee := createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", false)
	require.NoError(t, err)
	_, err = communitySvc.Join(ctx, member.ID, community.ID)
	require.NoError(t, err)

	inv, err := svc.Invite(ctx, creator.ID, community.ID, "carol")
	require.NoError(t, err)
	_, err = svc.Respond(ctx, inv.ID, invitee.ID, false)
	require.NoError(t, err)

	// 拒绝后可重新邀请，同一行翻回 pending 并换上新邀请人
	again, err := svc.Invite(ctx, member.ID, community.ID, "carol")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, again.ID)
	assert.EqualValues(t, model.RequestPending, again.Status)
	assert.Equal(t, member.ID, again.InviterID)
}

func TestRespondOnlyInvitee(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	invitee := createUser(t, db, "bob")
	other := createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", true)
	require.NoError(t, err)
	inv, err := svc.Invite(ctx, creator.ID, community.ID, "bob")
	require.NoError(t, err)

	_, err = svc.Respond(ctx, inv.ID, other.ID, true)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	_, err = svc.Respond(ctx, inv.ID, creator.ID, true)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	accepted, err := svc.Respond(ctx, inv.ID, invitee.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, model.RequestAccepted, accepted.Status)
	assert.EqualValues(t, 1, memberCount(t, db, community.ID, invitee.ID))
	assert.Len(t, outboxEvents(t, db, model.EventInvitationAccepted), 1)

	// 已落定不可再应答
	_, err = svc.Respond(ctx, inv.ID, invitee.ID, false)
	assert.ErrorIs(t, err, pkg.ErrInvalidState)
}

// 邀请与加入申请同时通过时成员行只有一条，两边都落在 accepted
func TestInvitationAndRequestBothAccept(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	requestSvc := NewJoinRequestService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	joiner := createUser(t, db, "bob")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", true)
	require.NoError(t, err)

	req, err := requestSvc.Submit(ctx, joiner.ID, community.ID)
	require.NoError(t, err)
	inv, err := svc.Invite(ctx, creator.ID, community.ID, "bob")
	require.NoError(t, err)

	accepted, err := svc.Respond(ctx, inv.ID, joiner.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, model.RequestAccepted, accepted.Status)

	reviewed, err := requestSvc.Review(ctx, req.ID, creator.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, model.RequestAccepted, reviewed.Status)

	assert.EqualValues(t, 1, memberCount(t, db, community.ID, joiner.ID))
}

func TestRevokeInvitation(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	invitee := createUser(t, db, "bob")
	outsider := createUser(t, db, "carol")

	community, err := communitySvc.Create(ctx, creator.ID, "book-club", "", true)
	require.NoError(t, err)

	// 受邀人自己可撤销
	inv, err := svc.Invite(ctx, creator.ID, community.ID, "bob")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Revoke(ctx, inv.ID, outsider.ID), pkg.ErrForbidden)
	require.NoError(t, svc.Revoke(ctx, inv.ID, invitee.ID))

	// 版主/管理员也可撤销
	inv, err = svc.Invite(ctx, creator.ID, community.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, inv.ID, creator.ID))
	assert.ErrorIs(t, svc.Revoke(ctx, inv.ID, creator.ID), pkg.ErrNotFound)
}

func TestListMineOnlyPending(t *testing.T) {
	db := newTestDB(t)
	communitySvc := NewCommunityService(db)
	svc := NewInvitationService(db)
	ctx := testCtx()
	creator := createUser(t, db, "alice")
	invitee := createUser(t, db, "bob")

	c1, err := communitySvc.Create(ctx, creator.ID, "club-one", "", true)
	require.NoError(t, err)
	c2, err := communitySvc.Create(ctx, creator.ID, "club-two", "", true)
	require.NoError(t, err)

	_, err = svc.Invite(ctx, creator.ID, c1.ID, "bob")
	require.NoError(t, err)
	inv2, err := svc.Invite(ctx, creator.ID, c2.ID, "bob")
	require.NoError(t, err)
	_, err = svc.Respond(ctx, inv2.ID, invitee.ID, false)
	require.NoError(t, err)

	rows, _, err := svc.ListMine(ctx, invitee.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, c1.ID, rows[0].CommunityID)
}
