package service

import (
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return pkg.Invalid("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkg.Conflict("username or email already taken")
		}
		return pkg.Internal(err)
	}
	return nil
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, pkg.Unauthenticated("user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Unauthenticated("invalid password")
	}
	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	// 单点登录：最新 token 写入 redis，旧会话失效
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, pkg.Internal(err)
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	if err := s.rUser.DeleteUserToken(usrID); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return pkg.Invalid("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return pkg.FromStore(err, "user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，成功后强制下线
func (s *UserService) ChangePassword(usrId uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrId)
	if err != nil {
		return pkg.FromStore(err, "user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return pkg.Unauthenticated("old password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return pkg.Internal(err)
	}
	return s.Logout(usrId)
}
