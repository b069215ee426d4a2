package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"
	"unicode"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/yungbote/brandcraft-backend/internal/data/repos"
	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

const (
	AvatarSize          = 512
	MaxAvatarUploadSize = 2 << 20
)

var avatarColors = []color.NRGBA{
	{R: 0x1E, G: 0x90, B: 0xFF, A: 0xFF},
	{R: 0xFF, G: 0x2D, B: 0x95, A: 0xFF},
	{R: 0x76, G: 0x4B, B: 0xA2, A: 0xFF},
	{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF},
	{R: 0xF5, G: 0x57, B: 0x6C, A: 0xFF},
	{R: 0x30, G: 0x8F, B: 0xD0, A: 0xFF},
}

type AvatarService interface {
	// UploadUserAvatar replaces the user's avatar with raw, center-cropped
	// and circle-clipped to a square PNG.
	UploadUserAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.UserProfile, error)
	// EnsureInitialsAvatar gives a user without an avatar one drawn from
	// the initials of fullName. Users that already have one are left alone.
	EnsureInitialsAvatar(ctx context.Context, userID uuid.UUID, fullName string) error
}

type avatarService struct {
	log           *logger.Logger
	profileRepo   repos.UserProfileRepo
	bucketService gcp.BucketService
	emit          SSEEmitter
	font          *truetype.Font
	now           func() time.Time
}

func NewAvatarService(log *logger.Logger, profileRepo repos.UserProfileRepo, bucketService gcp.BucketService, emit SSEEmitter) (AvatarService, error) {
	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse avatar font: %w", err)
	}
	return &avatarService{
		log:           log.With("service", "AvatarService"),
		profileRepo:   profileRepo,
		bucketService: bucketService,
		emit:          emitterOrNop(emit),
		font:          parsed,
		now:           time.Now,
	}, nil
}

func (as *avatarService) UploadUserAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user required")
	}
	if len(raw) == 0 {
		return nil, apierr.BadRequest("invalid_image", errors.New("empty upload"))
	}
	if len(raw) > MaxAvatarUploadSize {
		return nil, apierr.BadRequest("image_too_large", errors.New("image size should be less than 2MB"))
	}
	processed, err := processUploadedAvatar(raw, AvatarSize)
	if err != nil {
		return nil, apierr.BadRequest("invalid_image", err)
	}
	if err := as.replaceAvatar(ctx, userID, processed.Bytes()); err != nil {
		return nil, err
	}
	profile, err := as.profileRepo.GetByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	if profile != nil {
		emitToUser(ctx, as.emit, userID, realtime.SSEEventAvatarUpdated, map[string]any{"avatar_url": profile.AvatarURL})
	}
	return profile, nil
}

func (as *avatarService) EnsureInitialsAvatar(ctx context.Context, userID uuid.UUID, fullName string) error {
	profile, err := as.profileRepo.GetByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if profile != nil && strings.TrimSpace(profile.AvatarBucketKey) != "" {
		return nil
	}
	buf, err := as.generateInitialsAvatar(userID, fullName)
	if err != nil {
		return err
	}
	return as.replaceAvatar(ctx, userID, buf.Bytes())
}

// replaceAvatar uploads under a versioned key so CDNs never serve a stale
// image, then deletes the previous object best-effort.
func (as *avatarService) replaceAvatar(ctx context.Context, userID uuid.UUID, png []byte) error {
	var oldKey string
	if profile, err := as.profileRepo.GetByUserID(dbctx.New(ctx), userID); err == nil && profile != nil {
		oldKey = strings.TrimSpace(profile.AvatarBucketKey)
	}

	newKey := fmt.Sprintf("user_avatar/%s/%d.png", userID.String(), as.now().UnixNano())
	if err := as.bucketService.UploadFile(dbctx.New(ctx), newKey, bytes.NewReader(png)); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}
	if err := as.profileRepo.UpdateAvatarFields(dbctx.New(ctx), userID, newKey, as.bucketService.GetPublicURL(newKey)); err != nil {
		return fmt.Errorf("update avatar fields: %w", err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := as.bucketService.DeleteFile(dbctx.New(ctx), oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}
	return nil
}

func (as *avatarService) generateInitialsAvatar(userID uuid.UUID, fullName string) (bytes.Buffer, error) {
	var buf bytes.Buffer
	const size = AvatarSize
	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(avatarColors[int(userID[0])%len(avatarColors)])
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	face := truetype.NewFace(as.font, &truetype.Options{Size: 206, DPI: 72, Hinting: font.HintingNone})
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(Initials(fullName), float64(size)/2, float64(size)/2, 0.5, 0.35)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := min(w, h)
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// Initials takes the first letter of up to two words, upper-cased.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
