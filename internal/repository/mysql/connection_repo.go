package mysql

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"

	"gorm.io/gorm"
)

type ConnectionRepository struct {
	DB *gorm.DB
}

// Request 创建 pending 连接。同一对用户无论方向与状态已存在一行即冲突，
// uk_connection_pair 唯一索引兜底并发下的双发场景。
func (r *ConnectionRepository) Request(ctx context.Context, requesterID, targetID uint64) (*model.Connection, error) {
	conn := &model.Connection{
		UserID:          requesterID,
		ConnectedUserID: targetID,
		PairKey:         model.ConnectionPairKey(requesterID, targetID),
		Status:          model.ConnectionPending,
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Connection
		err := tx.Where("pair_key = ?", conn.PairKey).First(&existing).Error
		if err == nil {
			return pkg.Conflict("connection already exists between users")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.Internal(err)
		}
		if err := tx.Create(conn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkg.Conflict("connection already exists between users")
			}
			return pkg.Internal(err)
		}
		return InsertOutbox(tx, model.EventConnectionRequested, requesterID, targetID, conn.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Respond 接收方接受或拒绝 pending 连接
func (r *ConnectionRepository) Respond(ctx context.Context, connectionID, callerID uint64, accept bool) (*model.Connection, error) {
	var conn model.Connection
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&conn, connectionID).Error; err != nil {
			return pkg.FromStore(err, "connection")
		}
		if conn.ConnectedUserID != callerID {
			return pkg.Forbidden("only the request recipient may respond")
		}
		if conn.Status != model.ConnectionPending {
			return pkg.InvalidState("connection is not pending")
		}
		next := int8(model.ConnectionRejected)
		event := model.EventConnectionRejected
		if accept {
			next = model.ConnectionAccepted
			event = model.EventConnectionAccepted
		}
		// 条件更新，避免并发下重复迁移
		res := tx.Model(&model.Connection{}).
			Where("id = ? AND status = ?", connectionID, model.ConnectionPending).
			Update("status", next)
		if res.Error != nil {
			return pkg.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return pkg.InvalidState("connection is not pending")
		}
		conn.Status = next
		return InsertOutbox(tx, event, callerID, conn.UserID, conn.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// Remove 删除一对用户间 accepted 的连接，硬删除无残留
func (r *ConnectionRepository) Remove(ctx context.Context, callerID, otherUserID uint64) error {
	key := model.ConnectionPairKey(callerID, otherUserID)
	res := r.DB.WithContext(ctx).
		Where("pair_key = ? AND status = ?", key, model.ConnectionAccepted).
		Delete(&model.Connection{})
	if res.Error != nil {
		return pkg.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkg.NotFound("connection")
	}
	return nil
}

// FindBetween 查一对用户间的行，规范化键一次索引命中
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b uint64) (*model.Connection, error) {
	var conn model.Connection
	err := r.DB.WithContext(ctx).
		Where("pair_key = ?", model.ConnectionPairKey(a, b)).
		First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// ListForUser 游标分页查用户的连接（任一方向）
func (r *ConnectionRepository) ListForUser(ctx context.Context, userID uint64, status int8, cursor uint64, limit int) ([]model.Connection, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Connection{}).
		Where("(user_id = ? OR connected_user_id = ?) AND status = ?", userID, userID, status)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Connection
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}
