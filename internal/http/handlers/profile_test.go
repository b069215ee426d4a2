package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

type stubAvatars struct {
	services.AvatarService
	got []byte
}

func (s *stubAvatars) UploadUserAvatar(_ context.Context, userID uuid.UUID, raw []byte) (*types.UserProfile, error) {
	s.got = raw
	return &types.UserProfile{UserID: userID, AvatarURL: "http://localhost/media/a.png"}, nil
}

func avatarRequest(t *testing.T, size int) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(avatarFormField, "me.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte{1}, size)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAvatar(t *testing.T) {
	cases := []struct {
		name string
		size int
		want int
	}{
		{name: "fits", size: 1024, want: http.StatusOK},
		{name: "too large", size: services.MaxAvatarUploadSize + 1, want: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			avatars := &stubAvatars{}
			r := newRouter(uuid.New())
			r.POST("/api/profile/avatar", NewProfileHandler(nil, avatars).UploadAvatar)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, avatarRequest(t, tc.size))
			if w.Code != tc.want {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.want, w.Body.String())
			}
			if tc.want == http.StatusOK && len(avatars.got) != tc.size {
				t.Fatalf("service saw %d bytes", len(avatars.got))
			}
		})
	}
}
