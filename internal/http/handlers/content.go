package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brandcraft-backend/internal/http/response"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

const maxListLimit = 100

type ContentHandler struct {
	contents services.ContentService
}

func NewContentHandler(contents services.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

func (h *ContentHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.contents.Generate(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "generation_failed")
		return
	}
	response.RespondCreated(c, view)
}

func (h *ContentHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = min(n, maxListLimit)
	}
	views, err := h.contents.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_failed")
		return
	}
	response.RespondOK(c, gin.H{"generations": views})
}

func (h *ContentHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.contents.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.RespondServiceError(c, err, "generation_failed")
		return
	}
	response.RespondOK(c, view)
}
