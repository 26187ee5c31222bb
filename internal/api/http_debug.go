package api

import (
	"net/http"

	"recruit/internal/access"
	"recruit/internal/entity"

	"github.com/gin-gonic/gin"
)

// 调试接口仅在非生产环境注册，返回全部数据，不做分页

// Health 健康检查
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "服务器运行正常"})
}

func (h *HTTPHandler) DebugUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.repo.ListUsers(ctx, access.ScopedQuery{})
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	items := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		items = append(items, makeUserSummary(&users[idx]))
	}
	Success(c, http.StatusOK, "", gin.H{"count": total, "users": items})
}

func (h *HTTPHandler) DebugResumes(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resumes, total, err := h.repo.ListResumes(ctx, access.ScopedQuery{})
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	items := make([]entity.ResumeItem, 0, len(resumes))
	for idx := range resumes {
		items = append(items, makeResumeItem(&resumes[idx]))
	}
	Success(c, http.StatusOK, "", gin.H{"count": total, "resumes": items})
}

func (h *HTTPHandler) DebugMessages(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	messages, total, err := h.repo.ListMessages(ctx, access.ScopedQuery{})
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	items := make([]entity.MessageItem, 0, len(messages))
	for idx := range messages {
		items = append(items, makeMessageItem(&messages[idx]))
	}
	Success(c, http.StatusOK, "", gin.H{"count": total, "messages": items})
}

// DebugStats 各表记录数
func (h *HTTPHandler) DebugStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.repo.CountUsers(ctx)
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	resumes, err := h.repo.CountResumes(ctx)
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	messages, err := h.repo.CountMessages(ctx)
	if err != nil {
		h.internalError(c, "查询失败", err)
		return
	}
	Success(c, http.StatusOK, "", gin.H{"users": users, "resumes": resumes, "messages": messages})
}
