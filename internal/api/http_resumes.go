package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"recruit/internal/access"
	"recruit/internal/entity"
	"recruit/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateResume 提交简历，提交人为当前登录用户
func (h *HTTPHandler) CreateResume(c *gin.Context) {
	var req entity.ResumeCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	requestUser := CurrentUser(c)
	resume := &entity.DbResume{
		UserID:     requestUser.ID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Position:   strings.TrimSpace(req.Position),
		ResumeLink: strings.TrimSpace(req.ResumeLink),
		Intro:      strings.TrimSpace(req.Intro),
		Status:     entity.ResumeStatusPending,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.CreateResume(ctx, resume); err != nil {
		h.internalError(c, "提交失败", err)
		return
	}
	metrics.ResumeSubmitted()

	resume.User = &entity.DbUser{ID: requestUser.ID, Name: requestUser.Name, Email: requestUser.Email}
	Success(c, http.StatusCreated, "简历提交成功", entity.ResumeDetailResponse{Resume: makeResumeItem(resume)})
}

// ListResumes 简历列表，普通用户只能看到自己提交的简历
func (h *HTTPHandler) ListResumes(c *gin.Context) {
	var query entity.ResumeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "无效的查询参数")
		return
	}

	filters := listFilters(query.ListParams)
	filters.Position = query.Position
	filters.Status = query.Status
	if ownerID, err := strconv.ParseUint(strings.TrimSpace(query.UserID), 10, 64); err == nil && ownerID > 0 {
		filters.OwnerID = access.Owner(uint(ownerID))
	}
	scoped := access.BuildQuery(CurrentUser(c).Actor(), filters)

	ctx, cancel := requestContext(c)
	defer cancel()

	resumes, total, err := h.repo.ListResumes(ctx, scoped)
	if err != nil {
		h.internalError(c, "获取简历列表失败", err)
		return
	}

	response := entity.ResumeListResponse{
		Resumes:    make([]entity.ResumeItem, 0, len(resumes)),
		Pagination: access.NewPagination(scoped, total),
	}
	for idx := range resumes {
		response.Resumes = append(response.Resumes, makeResumeItem(&resumes[idx]))
	}
	Success(c, http.StatusOK, "", response)
}

// GetResume 查看单份简历，不存在时优先返回 404
func (h *HTTPHandler) GetResume(c *gin.Context) {
	id, ok := parseID(c, "无效的简历 ID")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resume, err := h.repo.GetResume(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeResumeNotFound, "简历不存在")
			return
		}
		h.internalError(c, "获取简历失败", err)
		return
	}

	if !access.CanAccess(CurrentUser(c).Actor(), access.Owner(resume.UserID), access.ActionRead) {
		Forbidden(c, "无权访问")
		return
	}
	Success(c, http.StatusOK, "", entity.ResumeDetailResponse{Resume: makeResumeItem(resume)})
}

// UpdateResumeStatus 管理员修改简历状态与备注
func (h *HTTPHandler) UpdateResumeStatus(c *gin.Context) {
	id, ok := parseID(c, "无效的简历 ID")
	if !ok {
		return
	}

	var req entity.ResumeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status := req.Status
	updates := entity.ResumeUpdates{Status: &status}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		updates.Notes = &notes
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.UpdateResume(ctx, id, updates); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeResumeNotFound, "简历不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}

	resume, err := h.repo.GetResume(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeResumeNotFound, "简历不存在")
			return
		}
		h.internalError(c, "更新失败", err)
		return
	}

	logrus.WithFields(logrus.Fields{"resume_id": id, "status": status}).Info("resume status updated")
	Success(c, http.StatusOK, "状态更新成功", entity.ResumeDetailResponse{Resume: makeResumeItem(resume)})
}

// DeleteResume 删除简历，提交人本人或管理员可操作
func (h *HTTPHandler) DeleteResume(c *gin.Context) {
	id, ok := parseID(c, "无效的简历 ID")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resume, err := h.repo.GetResume(ctx, id)
	if err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeResumeNotFound, "简历不存在")
			return
		}
		h.internalError(c, "删除失败", err)
		return
	}

	if !access.CanAccess(CurrentUser(c).Actor(), access.Owner(resume.UserID), access.ActionDelete) {
		Forbidden(c, "无权删除")
		return
	}

	if err := h.repo.DeleteResume(ctx, id); err != nil {
		if isNotFound(err) {
			NotFound(c, ErrCodeResumeNotFound, "简历不存在")
			return
		}
		h.internalError(c, "删除失败", err)
		return
	}
	Success(c, http.StatusOK, "删除成功", nil)
}

// ResumeStats 管理员统计面板
func (h *HTTPHandler) ResumeStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := h.repo.ResumeStats(ctx, startOfDay)
	if err != nil {
		h.internalError(c, "获取统计失败", err)
		return
	}
	Success(c, http.StatusOK, "", stats)
}
