package service

import (
	"context"
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type ConnectionService struct {
	repo *mysql.ConnectionRepository
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{
		repo: &mysql.ConnectionRepository{DB: db},
	}
}

// Request 发起连接请求。自连与任意状态下的既有行都是冲突。
// 被拒绝过的请求不能重发：这是有意与加入申请的重提策略不同。
func (s *ConnectionService) Request(ctx context.Context, requesterID, targetID uint64) (*model.Connection, error) {
	if requesterID == 0 || targetID == 0 {
		return nil, pkg.Invalid("invalid user id")
	}
	if requesterID == targetID {
		return nil, pkg.Conflict("cannot connect to yourself")
	}
	return s.repo.Request(ctx, requesterID, targetID)
}

// Respond 接收方接受或拒绝
func (s *ConnectionService) Respond(ctx context.Context, connectionID, callerID uint64, accept bool) (*model.Connection, error) {
	if connectionID == 0 {
		return nil, pkg.Invalid("invalid connection id")
	}
	return s.repo.Respond(ctx, connectionID, callerID, accept)
}

// Remove 任一方可解除已建立的连接
func (s *ConnectionService) Remove(ctx context.Context, callerID, otherUserID uint64) error {
	if callerID == otherUserID {
		return pkg.Invalid("invalid user id")
	}
	return s.repo.Remove(ctx, callerID, otherUserID)
}

// StatusFor 把有向行折算成相对查看者的状态投影
func (s *ConnectionService) StatusFor(ctx context.Context, viewerID, otherID uint64) (string, error) {
	if viewerID == otherID {
		return model.RelationSelf, nil
	}
	conn, err := s.repo.FindBetween(ctx, viewerID, otherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RelationNotConnected, nil
	}
	if err != nil {
		return "", pkg.Internal(err)
	}
	switch conn.Status {
	case model.ConnectionAccepted:
		return model.RelationConnected, nil
	case model.ConnectionRejected:
		return model.RelationRejected, nil
	case model.ConnectionBlocked:
		return model.RelationBlocked, nil
	default:
		if conn.UserID == viewerID {
			return model.RelationRequestSent, nil
		}
		return model.RelationRequestReceived, nil
	}
}

// ListConnections 我的连接列表
func (s *ConnectionService) ListConnections(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Connection, uint64, error) {
	rows, next, err := s.repo.ListForUser(ctx, userID, model.ConnectionAccepted, cursor, limit)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	return rows, next, nil
}

// ListPendingReceived 待我处理的连接请求
func (s *ConnectionService) ListPendingReceived(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Connection, uint64, error) {
	rows, next, err := s.repo.ListForUser(ctx, userID, model.ConnectionPending, cursor, limit)
	if err != nil {
		return nil, 0, pkg.Internal(err)
	}
	// 只保留自己是接收方的行
	out := rows[:0]
	for _, c := range rows {
		if c.ConnectedUserID == userID {
			out = append(out, c)
		}
	}
	return out, next, nil
}
