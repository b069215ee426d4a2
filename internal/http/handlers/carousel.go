package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/carousel"
	"github.com/yungbote/brandcraft-backend/internal/http/response"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

var (
	errSlideNotFound    = errors.New("slide not found")
	errExportFailed     = errors.New("export failed")
	errExportInProgress = errors.New("an archive export is already running")
)

type CarouselHandler struct {
	log       *logger.Logger
	carousels services.CarouselService
}

func NewCarouselHandler(log *logger.Logger, carousels services.CarouselService) *CarouselHandler {
	return &CarouselHandler{log: log.With("handler", "CarouselHandler"), carousels: carousels}
}

func (h *CarouselHandler) State(c *gin.Context) {
	h.navigate(c, h.carousels.State)
}

func (h *CarouselHandler) Next(c *gin.Context) {
	h.navigate(c, h.carousels.Next)
}

func (h *CarouselHandler) Previous(c *gin.Context) {
	h.navigate(c, h.carousels.Previous)
}

func (h *CarouselHandler) Jump(c *gin.Context) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("index is required"))
		return
	}
	h.navigate(c, func(ctx context.Context, userID, genID uuid.UUID) (*services.CarouselState, error) {
		return h.carousels.JumpTo(ctx, userID, genID, *req.Index)
	})
}

func (h *CarouselHandler) navigate(c *gin.Context, op func(ctx context.Context, userID, genID uuid.UUID) (*services.CarouselState, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	genID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	state, err := op(c.Request.Context(), userID, genID)
	if err != nil {
		response.RespondServiceError(c, err, "carousel_failed")
		return
	}
	response.RespondOK(c, state)
}

// DownloadSlide serves slide :n, counted from 1.
func (h *CarouselHandler) DownloadSlide(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	genID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_slide", err)
		return
	}
	saver := newResponseSaver(c)
	outcome, err := h.carousels.DownloadSlide(c.Request.Context(), userID, genID, n-1, saver)
	h.finishExport(c, saver, outcome, err)
}

// DownloadAll keeps rendering if the client goes away so the busy flag and
// the completion toast stay consistent.
func (h *CarouselHandler) DownloadAll(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	genID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	saver := newResponseSaver(c)
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, err := h.carousels.DownloadAll(ctx, userID, genID, saver)
	h.finishExport(c, saver, outcome, err)
}

func (h *CarouselHandler) finishExport(c *gin.Context, saver *responseSaver, outcome carousel.Outcome, err error) {
	if err != nil {
		response.RespondServiceError(c, err, "export_failed")
		return
	}
	if saver.written {
		if outcome != carousel.OutcomeSuccess {
			h.log.Warn("Export failed after response started", "outcome", outcome)
		}
		return
	}
	switch outcome {
	case carousel.OutcomeSkipped:
		response.RespondError(c, http.StatusNotFound, "slide_not_found", errSlideNotFound)
	case carousel.OutcomeBusy:
		response.RespondError(c, http.StatusConflict, "export_in_progress", errExportInProgress)
	default:
		response.RespondError(c, http.StatusInternalServerError, "export_failed", errExportFailed)
	}
}
