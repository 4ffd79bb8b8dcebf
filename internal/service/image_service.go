package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/media"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/ports"
)

var (
	ErrImageTooLarge       = errors.New("image exceeds the size limit")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageDecodeFailed   = errors.New("image could not be decoded")
	errImageUploadInternal = errors.New("image upload failed")
)

const defaultMaxImageBytes = 15 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type ImageServiceConfig struct {
	Bucket       string
	MaxBytes     int64
	MaxDimension int
}

// ImageService runs destination image uploads through the media pipeline and
// into object storage.
type ImageService struct {
	storage   ports.ObjectStorage
	processor media.Processor
	cfg       ImageServiceConfig
}

func NewImageService(storage ports.ObjectStorage, processor media.Processor, cfg ImageServiceConfig) *ImageService {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxImageBytes
	}
	return &ImageService{storage: storage, processor: processor, cfg: cfg}
}

// UploadDestinationImage normalizes the upload and stores it under a key
// scoped to the destination. It returns the public URL of the stored object.
func (s *ImageService) UploadDestinationImage(ctx context.Context, destinationID uuid.UUID, upload media.Upload) (string, error) {
	if upload.Size > s.cfg.MaxBytes {
		return "", ErrImageTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", ErrUnsupportedImage
	}

	result, err := s.processor.Process(ctx, upload, s.cfg.MaxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDecodeFailed, err)
	}

	key := fmt.Sprintf("destinations/%s/%d%s", destinationID, time.Now().UnixNano(), extensionFor(result.ContentType, upload.FileName))
	url, err := s.storage.Upload(ctx, s.cfg.Bucket, key, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errImageUploadInternal, err)
	}
	return url, nil
}

func extensionFor(contentType, fileName string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" {
		return ext
	}
	return ".bin"
}
