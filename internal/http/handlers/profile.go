package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brandcraft-backend/internal/http/response"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

const avatarFormField = "avatar"

type ProfileHandler struct {
	profiles services.ProfileService
	avatars  services.AvatarService
}

func NewProfileHandler(profiles services.ProfileService, avatars services.AvatarService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, avatars: avatars}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "profile_failed")
		return
	}
	response.RespondOK(c, view)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var upd services.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.profiles.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		response.RespondServiceError(c, err, "profile_update_failed")
		return
	}
	response.RespondOK(c, view)
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var prefs services.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.profiles.UpdatePreferences(c.Request.Context(), userID, prefs)
	if err != nil {
		response.RespondServiceError(c, err, "preferences_update_failed")
		return
	}
	response.RespondOK(c, view)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if h.avatars == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "storage_unavailable", errors.New("avatar storage is not configured"))
		return
	}
	fh, err := c.FormFile(avatarFormField)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if fh.Size > services.MaxAvatarUploadSize {
		response.RespondError(c, http.StatusBadRequest, "image_too_large", errors.New("image size should be less than 2MB"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, services.MaxAvatarUploadSize+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	profile, err := h.avatars.UploadUserAvatar(c.Request.Context(), userID, raw)
	if err != nil {
		response.RespondServiceError(c, err, "avatar_upload_failed")
		return
	}
	response.RespondOK(c, gin.H{"avatar_url": profile.AvatarURL})
}
