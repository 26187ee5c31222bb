package api

import (
	"net/http"
	"strings"

	"recruit/internal/access"
	"recruit/internal/entity"
	"recruit/internal/metrics"

	"github.com/gin-gonic/gin"
)

// CreateMessage 访客留言，登录用户的留言会关联到其账户
func (h *HTTPHandler) CreateMessage(c *gin.Context) {
	if !h.messageLimiter.allow(c.ClientIP()) {
		TooManyRequests(c, "留言过于频繁，请稍后再试")
		return
	}

	var req entity.MessageCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	message := &entity.DbMessage{
		Name:    strings.TrimSpace(req.Name),
		Message: strings.TrimSpace(req.Message),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}
	requestUser := CurrentUser(c)
	if requestUser != nil {
		message.UserID = access.Owner(requestUser.ID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.CreateMessage(ctx, message); err != nil {
		h.internalError(c, "提交失败", err)
		return
	}
	metrics.MessageSubmitted(requestUser == nil)

	if requestUser != nil {
		message.User = &entity.DbUser{ID: requestUser.ID, Name: requestUser.Name, Email: requestUser.Email}
	}
	Success(c, http.StatusCreated, "留言提交成功", entity.MessageDetailResponse{Message: makeMessageItem(message)})
}

// ListMessages 留言列表，普通用户只能看到自己的留言
func (h *HTTPHandler) ListMessages(c *gin.Context) {
	var query entity.MessageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "无效的查询参数")
		return
	}

	scoped := access.BuildQuery(CurrentUser(c).Actor(), listFilters(query.ListParams))

	ctx, cancel := requestContext(c)
	defer cancel()

	messages, total, err := h.repo.ListMessages(ctx, scoped)
	if err != nil {
		h.internalError(c, "获取留言列表失败", err)
		return
	}

	response := entity.MessageListResponse{
		Messages:   make([]entity.MessageItem, 0, len(messages)),
		Pagination: access.NewPagination(scoped, total),
	}
	for idx := range messages {
		response.Messages = append(response.Messages, makeMessageItem(&messages[idx]))
	}
	Success(c, http.StatusOK, "", response)
}

// UpdateMessage 管理员标记已读或回复
func (h *HTTPHandler) UpdateMessage(c *gin.Context) {
	id, ok := parseID(c, "无效的留言 ID")
	if !ok {
		return
	}

	var req entity.MessageUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentUser(c).Actor()
	var updates entity.MessageUpdates
	if req.IsRead != nil {
		if !access.HasCapability(actor, access.ActionMarkRead) {
			Forbidden(c, "需要管理员权限")
			return
		}
		updates.IsRead = req.IsRead
	}
	if req.Reply != nil {
		if !access.HasCapability(actor, access.ActionReply) {
			Forbidden(c, "需要管理员权限")
			return
		}
		reply := strings.TrimSpace(*req.Reply)
		updates.Reply = &reply
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.UpdateMessage(ctx, id, updates); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeMessageNotFound, "留言不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}

	message, err := h.repo.GetMessage(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeMessageNotFound, "留言不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}
	Success(c, http.StatusOK, "更新成功", entity.MessageDetailResponse{Message: makeMessageItem(message)})
}

// DeleteMessage 删除留言，匿名留言只有管理员可以删除
func (h *HTTPHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseID(c, "无效的留言 ID")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	message, err := h.repo.GetMessage(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeMessageNotFound, "留言不存在")
			return
		}
		h.internalError(c, "删除失败", err)
		return
	}

	if !access.CanAccess(CurrentUser(c).Actor(), message.UserID, access.ActionDelete) {
		Forbidden(c, "无权删除")
		return
	}

	if err := h.repo.DeleteMessage(ctx, id); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeMessageNotFound, "留言不存在")
			return
		}
		h.internalError(c, "删除失败", err)
		return
	}
	Success(c, http.StatusOK, "删除成功", nil)
}
