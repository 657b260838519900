package service

import (
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码，scope 取 register/reset
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return pkg.Internal(err)
	}
	if err = s.rds.SaveCode(scope, email, code); err != nil {
		return pkg.Internal(err)
	}

	subject, html := pkg.CodeMail(scope, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject, html); err != nil {
		// 发送失败时清掉验证码，避免死码占位
		_ = s.rds.DeleteCode(scope, email)
		return pkg.Internal(err)
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetCode(scope, email)
	if err != nil {
		return false, nil
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, pkg.Internal(err)
	}
	return true, nil
}
