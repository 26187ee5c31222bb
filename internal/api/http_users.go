package api

import (
	"net/http"
	"strings"

	"recruit/internal/access"
	"recruit/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func listFilters(params entity.ListParams) access.Filters {
	return access.Filters{
		Page:   params.Page,
		Limit:  params.Limit,
		Search: params.Search,
		Sort:   params.Sort,
	}
}

// ListUsers 用户列表，仅管理员
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "无效的查询参数")
		return
	}

	scoped := access.BuildQuery(CurrentUser(c).Actor(), listFilters(query.ListParams))

	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.repo.ListUsers(ctx, scoped)
	if err != nil {
		h.internalError(c, "获取用户列表失败", err)
		return
	}

	response := entity.UserListResponse{
		Users:      make([]entity.UserSummary, 0, len(users)),
		Pagination: access.NewPagination(scoped, total),
	}
	for idx := range users {
		response.Users = append(response.Users, makeUserSummary(&users[idx]))
	}
	Success(c, http.StatusOK, "", response)
}

// GetUser 查看用户信息，普通用户只能查看自己
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "无效的用户 ID")
	if !ok {
		return
	}
	if !access.CanAccess(CurrentUser(c).Actor(), access.Owner(id), access.ActionRead) {
		Forbidden(c, "无权访问")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeUserNotFound, "用户不存在")
			return
		}
		h.internalError(c, "获取用户信息失败", err)
		return
	}
	Success(c, http.StatusOK, "", entity.UserDetailResponse{User: makeUserSummary(user)})
}

// UpdateUser 修改用户信息。role 与 isActive 仅管理员可改，普通用户提交时忽略。
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "无效的用户 ID")
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentUser(c).Actor()
	if !access.CanAccess(actor, access.Owner(id), access.ActionUpdate) {
		Forbidden(c, "无权修改")
		return
	}

	var updates entity.UserUpdates
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		updates.Name = &name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		updates.Phone = &phone
	}
	if req.Role != nil && access.HasCapability(actor, access.ActionChangeRole) {
		updates.Role = req.Role
	}
	if req.IsActive != nil && access.HasCapability(actor, access.ActionChangeActive) {
		updates.IsActive = req.IsActive
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeUserNotFound, "用户不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeUserNotFound, "用户不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}
	Success(c, http.StatusOK, "更新成功", entity.UserDetailResponse{User: makeUserSummary(user)})
}

// DeleteUser 删除用户，仅管理员，且不能删除自己
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "无效的用户 ID")
	if !ok {
		return
	}

	requestUser := CurrentUser(c)
	if requestUser != nil && requestUser.ID == id {
		BadRequest(c, ErrCodeCannotDeleteSelf, "不能删除当前登录的账户")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeUserNotFound, "用户不存在")
			return
		}
		h.internalError(c, "删除失败", err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "operator_id": requestUser.ID}).Info("user deleted")
	Success(c, http.StatusOK, "删除成功", nil)
}
