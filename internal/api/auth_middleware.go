package api

import (
	"errors"
	"net/http"

	"recruit/internal/access"
	"recruit/internal/auth"
	"recruit/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentUserContextKey = "current-user"
)

// RequestUser 存储请求上下文中的认证用户信息
type RequestUser struct {
	ID    uint
	Email string
	Name  string
	Role  string
}

// IsAdmin 判断用户是否具有管理员权限
func (u *RequestUser) IsAdmin() bool {
	return u != nil && u.Role == entity.UserRoleAdmin
}

// Actor 转换为权限判断使用的主体，匿名请求返回 nil。
func (u *RequestUser) Actor() *access.Actor {
	if u == nil {
		return nil
	}
	return &access.Actor{ID: u.ID, Role: u.Role}
}

// RequireRepository 数据库未配置时直接返回 503
func (h *HTTPHandler) RequireRepository() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.repo == nil {
			ServiceUnavailable(c, "数据库不可用")
			return
		}
		c.Next()
	}
}

// AuthMiddleware JWT 认证中间件，要求请求携带有效的 Bearer Token。
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				Unauthorized(c, "未提供认证令牌")
				return
			}
			Unauthorized(c, "无效的授权头格式")
			return
		}

		user, status := h.resolveUser(c, tokenString)
		switch status {
		case http.StatusOK:
		case http.StatusForbidden:
			ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "账户已被禁用")
			return
		case http.StatusInternalServerError:
			InternalError(c, "验证用户失败")
			return
		default:
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeSessionExpired, "认证令牌无效或已过期")
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// OptionalAuth 携带有效 Token 时附加当前用户，否则按匿名访问继续处理。
func (h *HTTPHandler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err == nil {
			if user, status := h.resolveUser(c, tokenString); status == http.StatusOK {
				c.Set(currentUserContextKey, user)
			}
		}
		c.Next()
	}
}

// resolveUser 校验 Token 并加载用户，第二个返回值为对应的 HTTP 状态。
func (h *HTTPHandler) resolveUser(c *gin.Context, tokenString string) (*RequestUser, int) {
	claims, err := h.authManager.ParseToken(tokenString)
	if err != nil {
		logrus.WithError(err).Debug("failed to parse jwt token")
		return nil, http.StatusUnauthorized
	}
	if h.repo == nil {
		return nil, http.StatusInternalServerError
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, http.StatusUnauthorized
		}
		logrus.WithError(err).WithField("user_id", claims.UserID).Error("failed to load user")
		return nil, http.StatusInternalServerError
	}
	if !user.IsActive {
		return nil, http.StatusForbidden
	}

	return &RequestUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, http.StatusOK
}

// RequireCapability 管理员能力守卫中间件，例如用户列表与统计面板
func (h *HTTPHandler) RequireCapability(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.HasCapability(CurrentUser(c).Actor(), action) {
			Forbidden(c, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户，匿名请求返回 nil
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}
