package models

import (
	"errors"
	"strings"

	"github.com/pharmatrace/internal/constants"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultUser 初始化默认登记账号（已存在则跳过）
func InitDefaultUser(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@pharmatrace.local"
	}
	if password == "" {
		password = "pharmatrace123"
	}

	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.SplitN(email, "@", 2)[0],
		Status:       constants.UserStatusActive,
	}
	return DB.Create(&user).Error
}
