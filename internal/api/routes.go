package api

import (
	"strings"

	"recruit/internal/access"
	"recruit/internal/metrics"
	"recruit/internal/storage"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部路由，main 与测试共用
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", h.Health)

	data := apiGroup.Group("")
	data.Use(h.RequireRepository())

	authGroup := data.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	resumes := data.Group("/resumes")
	resumes.Use(h.AuthMiddleware())
	resumes.POST("", h.CreateResume)
	resumes.GET("", h.ListResumes)
	resumes.POST("/upload", h.UploadResumeFile)
	resumes.GET("/stats/summary", h.RequireCapability(access.ActionViewStats), h.ResumeStats)
	resumes.GET("/:id", h.GetResume)
	resumes.PATCH("/:id/status", h.RequireCapability(access.ActionUpdateStatus), h.UpdateResumeStatus)
	resumes.DELETE("/:id", h.DeleteResume)

	messages := data.Group("/messages")
	messages.POST("", h.OptionalAuth(), h.CreateMessage)
	messages.GET("", h.AuthMiddleware(), h.ListMessages)
	messages.PATCH("/:id", h.AuthMiddleware(), h.RequireCapability(access.ActionMarkRead), h.UpdateMessage)
	messages.DELETE("/:id", h.AuthMiddleware(), h.DeleteMessage)

	users := data.Group("/users")
	users.Use(h.AuthMiddleware())
	users.GET("", h.RequireCapability(access.ActionListUsers), h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.RequireCapability(access.ActionDeleteUser), h.DeleteUser)

	if !h.cfg.IsProduction() {
		debug := data.Group("/debug")
		debug.GET("/users", h.DebugUsers)
		debug.GET("/resumes", h.DebugResumes)
		debug.GET("/messages", h.DebugMessages)
		debug.GET("/stats", h.DebugStats)
	}

	// 本地存储的附件通过静态路由下载
	if localProvider, ok := h.storage.(storage.LocalBaseDirProvider); ok {
		base := h.storagePublicBase
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			r.Static(base, localProvider.LocalBaseDir())
		}
	}

	r.NoRoute(NoRoute)
}
