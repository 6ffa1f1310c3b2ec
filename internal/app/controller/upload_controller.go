package controller

import (
	"net/http"

	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	"github.com/amanabooks/bookstore-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	s3Storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		s3Storage: s3Storage,
	}
}

type PresignCoverRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
}

// PresignCover validates the upload and hands back a presigned PUT URL so
// the cover image goes straight to object storage, never through this server.
// POST /api/v1/upload/cover
func (ctrl *UploadController) PresignCover(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename, content_type and file_size are required")
		return
	}

	if err := ctrl.s3Storage.ValidateContentType(req.ContentType, storage.AllowedCoverTypes); err != nil {
		log.Warn("Rejected cover upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	if err := ctrl.s3Storage.ValidateFileSize(req.FileSize, storage.MaxCoverSize); err != nil {
		log.Warn("Rejected cover upload size", map[string]interface{}{
			"file_size": req.FileSize,
		})
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Cover image must be 5MB or smaller")
		return
	}

	resp, err := ctrl.s3Storage.PresignCoverUpload(req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	log.Info("Presigned cover upload URL issued", map[string]interface{}{
		"key": resp.Key,
	})

	c.JSON(http.StatusOK, resp)
}
