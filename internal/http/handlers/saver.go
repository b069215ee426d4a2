package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// responseSaver streams an exported file to the client as an attachment.
// Once Save has started writing, the status line is gone and any later
// failure can only be logged.
type responseSaver struct {
	c       *gin.Context
	written bool
}

func newResponseSaver(c *gin.Context) *responseSaver {
	return &responseSaver{c: c}
}

func (s *responseSaver) Save(_ context.Context, filename, contentType string, r io.Reader) error {
	h := s.c.Writer.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("Cache-Control", "no-store")
	s.c.Status(http.StatusOK)
	s.written = true
	_, err := io.Copy(s.c.Writer, r)
	return err
}
