package model

import (
	"context"
	"time"

	"recruit/internal/access"
	"recruit/internal/entity"

	"gorm.io/gorm"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, query access.ScopedQuery) ([]entity.DbUser, int64, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 简历
	CreateResume(ctx context.Context, resume *entity.DbResume) error
	GetResume(ctx context.Context, id uint) (*entity.DbResume, error)
	ListResumes(ctx context.Context, query access.ScopedQuery) ([]entity.DbResume, int64, error)
	UpdateResume(ctx context.Context, id uint, updates entity.ResumeUpdates) error
	DeleteResume(ctx context.Context, id uint) error
	CountResumes(ctx context.Context) (int64, error)
	ResumeStats(ctx context.Context, since time.Time) (*entity.ResumeStats, error)

	// 留言
	CreateMessage(ctx context.Context, message *entity.DbMessage) error
	GetMessage(ctx context.Context, id uint) (*entity.DbMessage, error)
	ListMessages(ctx context.Context, query access.ScopedQuery) ([]entity.DbMessage, int64, error)
	UpdateMessage(ctx context.Context, id uint, updates entity.MessageUpdates) error
	DeleteMessage(ctx context.Context, id uint) error
	CountMessages(ctx context.Context) (int64, error)
}

// ErrNotFound 记录不存在，仓库实现直接返回 gorm.ErrRecordNotFound。
var ErrNotFound = gorm.ErrRecordNotFound
