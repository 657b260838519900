package service

import (
	"testing"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	conn, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, model.ConnectionPending, conn.Status)

	accepted, err := svc.Respond(ctx, conn.ID, b.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, model.ConnectionAccepted, accepted.Status)

	require.NoError(t, svc.Remove(ctx, a.ID, b.ID))

	// 删除是硬删除，重新请求是新的一行而不是复活旧行
	again, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, model.ConnectionPending, again.Status)
	assert.NotEqual(t, conn.ID, again.ID)

	assert.Len(t, outboxEvents(t, db, model.EventConnectionRequested), 2)
	assert.Len(t, outboxEvents(t, db, model.EventConnectionAccepted), 1)
}

func TestConnectionRequestSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	a := createUser(t, db, "alice")

	_, err := svc.Request(testCtx(), a.ID, a.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestConnectionPairUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	_, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// 同向重复
	_, err = svc.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)
	// 反向也冲突
	_, err = svc.Request(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)

	var n int64
	require.NoError(t, db.Model(&model.Connection{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestConnectionRespondGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")

	conn, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// 只有接收方能应答，发起方和无关用户都不行
	_, err = svc.Respond(ctx, conn.ID, a.ID, true)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	_, err = svc.Respond(ctx, conn.ID, c.ID, true)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	_, err = svc.Respond(ctx, conn.ID, b.ID, true)
	require.NoError(t, err)

	// 已落定的请求不能再迁移
	_, err = svc.Respond(ctx, conn.ID, b.ID, false)
	assert.ErrorIs(t, err, pkg.ErrInvalidState)

	_, err = svc.Respond(ctx, 99999, b.ID, true)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestConnectionRejectedCannotReRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	conn, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.Respond(ctx, conn.ID, b.ID, false)
	require.NoError(t, err)

	// 与加入申请不同，被拒绝的连接请求不能重发
	_, err = svc.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestConnectionRemoveRequiresAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	_, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// pending 不可删
	assert.ErrorIs(t, svc.Remove(ctx, a.ID, b.ID), pkg.ErrNotFound)
}

func TestConnectionStatusProjection(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	ctx := testCtx()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")

	status, err := svc.StatusFor(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationSelf, status)

	status, err = svc.StatusFor(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationNotConnected, status)

	conn, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	status, err = svc.StatusFor(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationRequestSent, status)

	status, err = svc.StatusFor(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationRequestReceived, status)

	_, err = svc.Respond(ctx, conn.ID, b.ID, true)
	require.NoError(t, err)

	status, err = svc.StatusFor(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationConnected, status)
	status, err = svc.StatusFor(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationConnected, status)
}
