package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"
)

var (
	ErrEmailCodeSaveFailed = errors.New("email code save failed")
	ErrEmailCodeNotFound   = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
)

// EmailRepository 邮箱验证码存取，按 scope（register/reset）隔离
type EmailRepository struct{}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

func (e *EmailRepository) SaveCode(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrEmailCodeSaveFailed
	}
	return nil
}

// GetCode 不存在或已过期返回 ErrEmailCodeNotFound
func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), codeKey(scope, email)).Result()
	if err != nil {
		return "", ErrEmailCodeNotFound
	}
	return val, nil
}

// DeleteCode 校验通过后一次性删除（幂等）
func (e *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
