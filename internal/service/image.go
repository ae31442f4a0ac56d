package service

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Presigner issues temporary URLs for objects in the image bucket.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// ImageService turns stored recipe image references into URLs
type ImageService struct {
	presigner Presigner
	expiry    time.Duration
}

// NewImageService creates a new ImageService. With a nil presigner, object
// keys are returned unchanged.
func NewImageService(presigner Presigner, expiry time.Duration) *ImageService {
	return &ImageService{presigner: presigner, expiry: expiry}
}

// ResolveURL returns the URL for an image reference. Absolute http(s) URLs are
// passed through; anything else is treated as a key in the image bucket.
func (s *ImageService) ResolveURL(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if s.presigner == nil {
		return ref, nil
	}

	url, err := s.presigner.GeneratePresignedURL(ctx, strings.TrimPrefix(ref, "/"), s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign image %q: %w", ref, err)
	}
	return url, nil
}
