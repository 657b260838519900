package service

import (
	"context"
	"testing"

	"Lee_Social/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个内存库，限制单连接避免 :memory: 多连接各开一库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Connection{},
		&model.Follow{},
		&model.Community{},
		&model.CommunityMember{},
		&model.JoinRequest{},
		&model.CommunityInvitation{},
		&model.Post{},
		&model.CommunityEvent{},
		&model.NotificationOutbox{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x", Email: username + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func outboxEvents(t *testing.T, db *gorm.DB, eventType string) []model.NotificationOutbox {
	t.Helper()
	var rows []model.NotificationOutbox
	require.NoError(t, db.Where("event_type = ?", eventType).Find(&rows).Error)
	return rows
}

func memberCount(t *testing.T, db *gorm.DB, communityID, userID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&n).Error)
	return n
}

func testCtx() context.Context {
	return context.Background()
}
