package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

var newBucketService = gcp.NewBucketService

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode   StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code  StorageProviderBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf("object storage bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveBucketService picks the avatar store from cfg. Failures come back as
// *StorageProviderBootstrapError so startup logs say which stage broke.
func resolveBucketService(log *logger.Logger, cfg Config) (gcp.BucketService, error) {
	storageCfg, err := cfg.ObjectStorage()
	if err != nil {
		bootErr := &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorInvalidMode, Mode: cfg.StorageMode, Cause: err}
		log.Error("Object storage provider selection failed", "mode", cfg.StorageMode, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}
	if err := gcp.ValidateObjectStorageConfig(storageCfg); err != nil {
		bootErr := &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorInvalidConfig, Mode: string(storageCfg.Mode), Cause: err}
		log.Error("Object storage config invalid", "mode", storageCfg.Mode, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}

	log.Info("Selecting object storage provider",
		"mode", storageCfg.Mode,
		"avatar_bucket", storageCfg.AvatarBucket,
		"emulator_host", storageCfg.EmulatorHost,
	)
	bucket, err := newBucketService(log, storageCfg)
	if err != nil {
		bootErr := &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorConnectFailed, Mode: string(storageCfg.Mode), Cause: err}
		log.Error("Object storage provider bootstrap failed", "mode", storageCfg.Mode, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}
	return bucket, nil
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}
