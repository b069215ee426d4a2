package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type ObjectStorageMode string

const (
	ObjectStorageModeLocal       ObjectStorageMode = "local"
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

type ObjectStorageConfig struct {
	Mode          ObjectStorageMode
	AvatarBucket  string
	CDNDomain     string
	EmulatorHost  string
	LocalDir      string
	PublicBaseURL string
	// Credentials is either inline JSON or a path to a key file.
	Credentials string
}

func ParseObjectStorageMode(raw string) (ObjectStorageMode, error) {
	mode := ObjectStorageMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode == "" {
		return ObjectStorageModeLocal, nil
	}
	switch mode {
	case ObjectStorageModeLocal, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
		return mode, nil
	default:
		return "", fmt.Errorf(
			"invalid STORAGE_MODE=%q (allowed: %q, %q, %q)",
			raw, ObjectStorageModeLocal, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator,
		)
	}
}

func ValidateObjectStorageConfig(cfg ObjectStorageConfig) error {
	switch cfg.Mode {
	case ObjectStorageModeLocal:
		if strings.TrimSpace(cfg.LocalDir) == "" {
			return fmt.Errorf("STORAGE_MODE=local requires LOCAL_MEDIA_DIR")
		}
	case ObjectStorageModeGCS:
		if strings.TrimSpace(cfg.AvatarBucket) == "" {
			return fmt.Errorf("missing env var AVATAR_GCS_BUCKET_NAME")
		}
	case ObjectStorageModeGCSEmulator:
		if strings.TrimSpace(cfg.AvatarBucket) == "" {
			return fmt.Errorf("missing env var AVATAR_GCS_BUCKET_NAME")
		}
		u, err := url.Parse(strings.TrimSpace(cfg.EmulatorHost))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("STORAGE_MODE=gcs_emulator requires an absolute STORAGE_EMULATOR_HOST, got %q", cfg.EmulatorHost)
		}
	default:
		return fmt.Errorf("unsupported object storage mode %q", cfg.Mode)
	}
	if raw := strings.TrimSpace(cfg.PublicBaseURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid PUBLIC_BASE_URL=%q; expected absolute URL like http://localhost:8080", raw)
		}
	}
	return nil
}
