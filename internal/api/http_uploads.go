package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"recruit/internal/entity"
	"recruit/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultUploadMaxBytes int64 = 10 << 20

// 允许上传的简历附件类型，第一个为保存时使用的 Content-Type
var resumeFileTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
}

// UploadResumeFile 上传简历附件，返回的 url 可直接作为 resumeLink 提交
func (h *HTTPHandler) UploadResumeFile(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "文件存储不可用")
		return
	}

	maxBytes := h.cfg.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultUploadMaxBytes
	}
	// 预留 multipart 头部的空间
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			BadRequest(c, ErrCodeFileTooLarge, "文件过大")
			return
		}
		ValidationFailed(c, []FieldError{{Field: "file", Message: "file 不能为空"}})
		return
	}
	if fileHeader.Size > maxBytes {
		BadRequest(c, ErrCodeFileTooLarge, "文件过大")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed, ok := resumeFileTypes[ext]
	if !ok {
		BadRequest(c, ErrCodeUnsupportedFile, "仅支持 pdf、doc、docx 格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.internalError(c, "读取文件失败", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		h.internalError(c, "读取文件失败", err)
		return
	}
	if int64(len(data)) > maxBytes {
		BadRequest(c, ErrCodeFileTooLarge, "文件过大")
		return
	}
	if len(data) == 0 {
		ValidationFailed(c, []FieldError{{Field: "file", Message: "file 不能为空"}})
		return
	}

	detected := mimetype.Detect(data)
	if !matchesAny(detected, allowed) {
		logrus.WithFields(logrus.Fields{
			"filename": fileHeader.Filename,
			"detected": detected.String(),
		}).Info("rejected resume upload with mismatched content")
		BadRequest(c, ErrCodeUnsupportedFile, "文件内容与扩展名不符")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:    "resumes",
		Extension:   ext,
		ContentType: allowed[0],
	})
	if err != nil {
		h.internalError(c, "上传失败", err)
		return
	}

	Success(c, http.StatusCreated, "上传成功", entity.UploadResponse{
		Key:  key,
		URL:  storage.PublicURL(h.storagePublicBase, key),
		Size: int64(len(data)),
		Type: allowed[0],
	})
}

func matchesAny(detected *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if detected.Is(t) {
			return true
		}
	}
	return false
}
