package upload

import (
	"net/http"
	"os"
	"path/filepath"

	"opsdb/internal/shared/apperror"
	"opsdb/internal/shared/contextutil"
	"opsdb/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReportedErrors caps the error list in the HTTP response. The full
// list is still logged; the client only needs enough to fix the file.
const maxReportedErrors = 10

type UploadResponse struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	Duplicates   []string `json:"duplicates,omitempty"`
}

type Handler struct {
	service   Service
	uploadDir string
	logger    *zap.Logger
}

func NewHandler(service Service, uploadDir string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("upload.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upload.handler")
	}
	return &Handler{service: service, uploadDir: uploadDir, logger: l}
}

func (h *Handler) Employees(c *gin.Context) {
	path, cleanup, ok := h.saveUpload(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	res := h.service.ProcessEmployeeUpload(c.Request.Context(), path)
	h.respond(c, res)
}

func (h *Handler) Schedules(c *gin.Context) {
	path, cleanup, ok := h.saveUpload(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	// The mapping workbook is optional. Without it, short-code tokens
	// fall back to fuzzy matching against the employee directory.
	mappingPath := ""
	if _, err := c.FormFile("mapping"); err == nil {
		mp, mcleanup, ok := h.saveUpload(c, "mapping")
		if !ok {
			return
		}
		defer mcleanup()
		mappingPath = mp
	}

	res := h.service.ProcessScheduleUpload(c.Request.Context(), path, mappingPath)
	h.respond(c, res)
}

func (h *Handler) Attendance(c *gin.Context) {
	path, cleanup, ok := h.saveUpload(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	res := h.service.ProcessAttendanceUpload(c.Request.Context(), path)
	h.respond(c, res)
}

func (h *Handler) Exceptions(c *gin.Context) {
	path, cleanup, ok := h.saveUpload(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	res := h.service.ProcessExceptionUpload(c.Request.Context(), path)
	h.respond(c, res)
}

func (h *Handler) Rewards(c *gin.Context) {
	path, cleanup, ok := h.saveUpload(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	res := h.service.ProcessRewardUpload(c.Request.Context(), path)
	h.respond(c, res)
}

func (h *Handler) saveUpload(c *gin.Context, field string) (string, func(), bool) {
	file, err := c.FormFile(field)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "missing form file: "+field, nil)
		return "", nil, false
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("failed to create upload directory", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to store upload", nil)
		return "", nil, false
	}

	// Saved under a fresh name so concurrent uploads never collide.
	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logger.Error("failed to save upload", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "failed to store upload", nil)
		return "", nil, false
	}
	return dst, func() { _ = os.Remove(dst) }, true
}

func (h *Handler) respond(c *gin.Context, res Result) {
	logger := contextutil.GetLogger(c.Request.Context(), h.logger)
	if res.ErrorCount > 0 {
		logger.Warn("upload completed with row errors",
			zap.Int("success", res.SuccessCount),
			zap.Int("errors", res.ErrorCount),
			zap.Strings("detail", res.Errors),
		)
	}

	errs := res.Errors
	if len(errs) > maxReportedErrors {
		errs = errs[:maxReportedErrors]
	}

	response.Success(c, http.StatusOK, UploadResponse{
		SuccessCount: res.SuccessCount,
		ErrorCount:   res.ErrorCount,
		Errors:       errs,
		Duplicates:   res.Duplicates,
	}, nil)
}
