package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brandcraft-backend/internal/http/response"
	"github.com/yungbote/brandcraft-backend/internal/onboarding"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

type OnboardingHandler struct {
	onboarding services.OnboardingService
}

func NewOnboardingHandler(svc services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: svc}
}

func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.onboarding.Status(c.Request.Context(), userID))
}

func (h *OnboardingHandler) Start(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	response.RespondCreated(c, h.onboarding.Start(c.Request.Context(), userID))
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.onboarding.Get(c.Request.Context(), userID)
	h.respond(c, snap, err)
}

func (h *OnboardingHandler) Patch(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var p onboarding.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	snap, err := h.onboarding.Apply(c.Request.Context(), userID, p)
	h.respond(c, snap, err)
}

func (h *OnboardingHandler) Toggle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Item  string `json:"item"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	snap, err := h.onboarding.Toggle(c.Request.Context(), userID, toggleField(req.Field), req.Item)
	h.respond(c, snap, err)
}

// toggleField accepts the short names the form posts as well as the
// record's column names.
func toggleField(s string) onboarding.Field {
	switch s {
	case "goals":
		return onboarding.FieldContentGoals
	case "topics":
		return onboarding.FieldTopicsOfInterest
	default:
		return onboarding.Field(s)
	}
}

func (h *OnboardingHandler) Next(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.onboarding.Next(c.Request.Context(), userID)
	h.respond(c, snap, err)
}

func (h *OnboardingHandler) Back(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.onboarding.Back(c.Request.Context(), userID)
	h.respond(c, snap, err)
}

func (h *OnboardingHandler) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := h.onboarding.Submit(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "onboarding_failed")
		return
	}
	response.RespondOK(c, res)
}

func (h *OnboardingHandler) respond(c *gin.Context, snap onboarding.Snapshot, err error) {
	if err != nil {
		response.RespondServiceError(c, err, "onboarding_failed")
		return
	}
	response.RespondOK(c, snap)
}
