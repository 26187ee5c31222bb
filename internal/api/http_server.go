package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recruit/internal/auth"
	"recruit/internal/config"
	"recruit/internal/model"
	"recruit/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 登录与留言限流
	loginLimiter   LoginLimiter
	messageLimiter *keyedLimiter
}

// NewHTTPHandler 创建 HTTP 处理器实例，redisClient 为 nil 时登录限流退化为进程内计数。
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, redisClient redis.UniversalClient) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	registerValidators()

	var loginLimiter LoginLimiter
	if redisClient != nil {
		loginLimiter = NewRedisLoginLimiter(redisClient, cfg.LoginRateLimitPerHour)
	} else {
		loginLimiter = NewMemoryLoginLimiter(cfg.LoginRateLimitPerHour)
	}

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		loginLimiter:      loginLimiter,
		messageLimiter:    newPerMinuteLimiter(cfg.MessageRatePerMinute),
	}, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// parseID 解析路径中的数字 ID，失败时直接写入 400 响应。
func parseID(c *gin.Context, message string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, message)
		return 0, false
	}
	return uint(id), true
}

// internalError 记录日志并返回 500，开发环境下附带错误详情。
func (h *HTTPHandler) internalError(c *gin.Context, message string, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error(message)
	if h.cfg.IsDevelopment() && err != nil {
		ErrorResponseWithDetail(c, http.StatusInternalServerError, ErrCodeInternalError, message, err.Error())
		return
	}
	InternalError(c, message)
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
