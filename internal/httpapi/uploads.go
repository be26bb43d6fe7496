package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sangha/internal/cloudinary"
)

const maxUpload = 10 << 20

// upload stores a multipart "file" or a JSON {"data": "<base64 data URL>"} and returns its URL.
func (a *API) upload(c *gin.Context) {
	if a.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage not configured"})
		return
	}
	ctx := c.Request.Context()
	var (
		result *cloudinary.UploadResult
		err    error
	)
	if strings.Contains(c.ContentType(), "multipart/form-data") {
		kind := cloudinary.ParseKind(c.PostForm("kind"))
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			badRequest(c, "file field required")
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(io.LimitReader(file, maxUpload+1))
		if ferr != nil {
			a.fail(c, ferr)
			return
		}
		if len(data) > maxUpload {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		result, err = a.Uploader.UploadBytes(ctx, kind, data, header.Filename)
	} else {
		var body struct {
			Data string `json:"data" binding:"required"`
			Kind string `json:"kind"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil {
			badRequest(c, `provide {"data": "<base64 data URL>"}`)
			return
		}
		result, err = a.Uploader.UploadBase64(ctx, cloudinary.ParseKind(body.Kind), body.Data)
	}
	if err != nil {
		if errors.Is(err, cloudinary.ErrEmpty) {
			a.fail(c, err)
			return
		}
		a.log.Warn("upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": result.SecureURL, "publicId": result.PublicID, "bytes": result.Bytes})
}
