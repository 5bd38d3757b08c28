// Package handler provides HTTP request handlers for the API.
package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"counselor-api/internal/dto"
)

// currentUser extracts the caller identity set by the identity
// middleware. The identity is an opaque string; an empty value only
// occurs when the middleware is not installed.
func currentUser(c *gin.Context) string {
	user, exists := c.Get("current_user")
	if !exists {
		return ""
	}
	id, ok := user.(string)
	if !ok {
		return ""
	}
	return id
}

// formPhoto extracts the optional photo file part from a multipart
// request. Returns nil when no file was sent.
func formPhoto(c *gin.Context) (*dto.PhotoUpload, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		// No file part is fine; the attachment is optional.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &dto.PhotoUpload{
		FileName: fileHeader.Filename,
		File:     file,
	}, nil
}

// closePhoto releases the file handle behind a photo upload. Multipart
// files can be backed by a temp file, so the handle must not outlive
// the request.
func closePhoto(photo *dto.PhotoUpload) {
	if photo == nil {
		return
	}
	if closer, ok := photo.File.(io.Closer); ok {
		closer.Close()
	}
}
