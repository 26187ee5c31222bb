package api

import (
	"errors"
	"net/http"
	"strings"

	"recruit/internal/auth"
	"recruit/internal/entity"
	"recruit/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register 注册普通用户并直接返回登录令牌
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetUserByEmail(ctx, email); err == nil {
		BadRequest(c, ErrCodeEmailExists, "该邮箱已被注册")
		return
	} else if !isNotFound(err) {
		h.internalError(c, "注册失败", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			ValidationFailed(c, []FieldError{{Field: "password", Message: err.Error()}})
			return
		}
		h.internalError(c, "注册失败", err)
		return
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         entity.UserRoleUser,
		IsActive:     true,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "该邮箱已被注册")
			return
		}
		h.internalError(c, "注册失败", err)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		h.internalError(c, "注册失败", err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	Success(c, http.StatusCreated, "注册成功", entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeUserSummary(user),
	})
}

// Login 校验邮箱密码并签发令牌
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := requestContext(c)
	defer cancel()

	allowed, err := h.loginLimiter.Allow(ctx, c.ClientIP()+":"+email)
	if err != nil {
		logrus.WithError(err).Warn("login rate limiter unavailable")
	}
	if !allowed {
		metrics.LoginAttempt(metrics.LoginRateLimited)
		TooManyRequests(c, "登录尝试过于频繁，请稍后再试")
		return
	}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			metrics.LoginAttempt(metrics.LoginFailed)
			logrus.WithField("email", email).Info("login failed: user not found")
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "邮箱或密码错误")
			return
		}
		h.internalError(c, "登录失败", err)
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		metrics.LoginAttempt(metrics.LoginFailed)
		logrus.WithField("user_id", user.ID).Info("login failed: password mismatch")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "邮箱或密码错误")
		return
	}

	if !user.IsActive {
		ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "账户已被禁用")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		h.internalError(c, "登录失败", err)
		return
	}

	metrics.LoginAttempt(metrics.LoginSucceeded)
	Success(c, http.StatusOK, "登录成功", entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeUserSummary(user),
	})
}

// Me 返回当前登录用户
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "请先登录")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeUserNotFound, "用户不存在")
			return
		}
		h.internalError(c, "获取用户信息失败", err)
		return
	}

	Success(c, http.StatusOK, "", entity.UserDetailResponse{User: makeUserSummary(dbUser)})
}
