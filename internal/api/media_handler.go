package api

import (
	"net/http"

	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves photos and videos attached to workouts.
type MediaHandler struct {
	mediaService service.MediaService
	responder
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService, resp responder) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, responder: resp}
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        int64  `json:"size" binding:"gte=0"`
}

// RequestUploadURL godoc
// @Summary Get a presigned upload URL
// @Description The client PUTs the file to uploadUrl, then confirms with objectKey.
// @Tags Media
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param request body UploadURLRequest true "File details"
// @Success 200 {object} gin.H "uploadUrl and objectKey"
// @Failure 400 {object} gin.H "Unsupported media type"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id}/media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ticket, err := h.mediaService.RequestUpload(c.Request.Context(), userID, c.Param("id"), req.FileName, req.ContentType)
	if err != nil {
		h.fail(c, err, "Could not prepare upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"uploadUrl": ticket.UploadURL,
		"objectKey": ticket.ObjectKey,
		"expiresAt": ticket.ExpiresAt,
	})
}

// ConfirmUpload godoc
// @Summary Record an uploaded file
// @Tags Media
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param request body ConfirmUploadRequest true "Uploaded object"
// @Success 201 {object} gin.H "media"
// @Failure 400 {object} gin.H "Invalid object key"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id}/media [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	media, err := h.mediaService.ConfirmUpload(c.Request.Context(), userID, c.Param("id"), service.ConfirmUploadInput{
		ObjectKey:   req.ObjectKey,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		h.fail(c, err, "Could not save media")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "media": media})
}

// ListMedia godoc
// @Summary List a workout's media
// @Tags Media
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} gin.H "media with download URLs"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id}/media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	media, err := h.mediaService.ListMedia(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "media": media})
}

// DeleteMedia godoc
// @Summary Delete a media file
// @Tags Media
// @Produce json
// @Param id path string true "Workout ID"
// @Param mediaId path string true "Media ID"
// @Success 200 {object} gin.H "Media deleted successfully"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout or media not found"
// @Router /api/workouts/{id}/media/{mediaId} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.mediaService.DeleteMedia(c.Request.Context(), userID, c.Param("id"), c.Param("mediaId")); err != nil {
		h.fail(c, err, "Error deleting media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Media deleted successfully"})
}
