package routes

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

func UploadRoutes(router *gin.Engine, uploader ImageUploader, auth gin.HandlerFunc) {
	router.POST("/api/upload", auth, UploadImage(uploader))
}

// UploadImage accepts a multipart "file" field and answers with its URL.
func UploadImage(uploader ImageUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

		header, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "No file provided")
			return
		}
		f, err := header.Open()
		if err != nil {
			badRequest(c, "Unreadable file")
			return
		}
		defer f.Close()

		url, err := uploader.Upload(c.Request.Context(), f, header.Filename)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
