package model

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"recruit/internal/auth"
	"recruit/internal/config"
	"recruit/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var adminEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// EnsureAdminUser 启动时确保默认管理员存在，已存在时不做任何修改。
// 返回值表示本次是否新建了管理员。
func EnsureAdminUser(ctx context.Context, repo Repository, cfg config.Config) (bool, error) {
	if repo == nil {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if !adminEmailPattern.MatchString(email) {
		return false, fmt.Errorf("invalid admin email %q", cfg.AdminEmail)
	}

	existing, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		logrus.WithFields(logrus.Fields{
			"email": existing.Email,
			"role":  existing.Role,
		}).Info("admin account already exists, skip provisioning")
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Administrator"
	}

	admin := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	logrus.WithField("email", email).Info("default admin account created")
	return true, nil
}
