package services

import (
	"errors"
	"net/http"

	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
)

var (
	errInvalidCredentials = errors.New("invalid email or password")
	errUnauthorized       = errors.New("invalid or expired token")
)

func unauthorized(err error) *apierr.Error {
	return apierr.New(http.StatusUnauthorized, "unauthorized", err)
}
