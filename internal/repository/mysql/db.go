package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB 打开 MySQL 连接。TranslateError 开启后唯一索引冲突
// 统一表现为 gorm.ErrDuplicatedKey，上层把并发竞争输掉的一方当作冲突处理。
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
