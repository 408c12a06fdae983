package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edugroup/site-api/services/storage"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/pdfvalidation"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// ErrStorageUnavailable is returned when uploads are attempted without object storage
var ErrStorageUnavailable = errors.New("file uploads are not available")

// ObjectStore receives uploaded files and returns their public URL
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UploadTarget names what an upload is for. It selects the storage folder
// and the accepted file types.
type UploadTarget string

const (
	UploadCarousel     UploadTarget = "carousel"
	UploadAchievers    UploadTarget = "achievers"
	UploadNews         UploadTarget = "news"
	UploadMedia        UploadTarget = "media"
	UploadPapers       UploadTarget = "papers"
	UploadResources    UploadTarget = "resources"
	UploadInstitutions UploadTarget = "institutions"
)

const (
	maxImageBytes = 10 << 20
	maxVideoBytes = 200 << 20
)

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/avif"}
var videoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}

type uploadRule struct {
	images bool
	videos bool
	pdf    *pdfvalidation.Limits
}

var uploadRules = map[UploadTarget]uploadRule{
	UploadCarousel:     {images: true},
	UploadAchievers:    {images: true},
	UploadNews:         {images: true},
	UploadInstitutions: {images: true},
	UploadMedia:        {images: true, videos: true},
	UploadPapers:       {pdf: &pdfvalidation.PaperLimits},
	UploadResources:    {images: true, pdf: &pdfvalidation.ResourceLimits},
}

func ParseUploadTarget(s string) (UploadTarget, error) {
	t := UploadTarget(s)
	if _, ok := uploadRules[t]; !ok {
		return "", fmt.Errorf("unknown upload target %q: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// UploadResult describes a stored file
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	PageCount   int    `json:"page_count,omitempty"`
}

// UploadService checks uploaded files by content and stores them
type UploadService struct {
	store ObjectStore
	now   func() time.Time
}

// NewUploadService accepts a nil store; every upload then fails with
// ErrStorageUnavailable
func NewUploadService(store ObjectStore) *UploadService {
	return &UploadService{store: store, now: time.Now}
}

func (s *UploadService) Upload(ctx context.Context, target UploadTarget, data []byte) (*UploadResult, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	rule, ok := uploadRules[target]
	if !ok {
		return nil, fmt.Errorf("unknown upload target %q: %w", target, ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrInvalidInput)
	}

	mt := mimetype.Detect(data)
	res := &UploadResult{ContentType: mt.String(), Size: int64(len(data))}

	switch {
	case rule.images && mimetype.EqualsAny(mt.String(), imageTypes...):
		if len(data) > maxImageBytes {
			return nil, fmt.Errorf("image is larger than %dMB: %w", maxImageBytes>>20, ErrInvalidInput)
		}
	case rule.videos && mimetype.EqualsAny(mt.String(), videoTypes...):
		if len(data) > maxVideoBytes {
			return nil, fmt.Errorf("video is larger than %dMB: %w", maxVideoBytes>>20, ErrInvalidInput)
		}
	case rule.pdf != nil && mt.Is("application/pdf"):
		check := pdfvalidation.Check(data, *rule.pdf)
		if !check.Valid() {
			return nil, fmt.Errorf("%s: %w", check.Problem, ErrInvalidInput)
		}
		res.PageCount = check.PageCount
	default:
		return nil, fmt.Errorf("%s files cannot be uploaded as %s: %w", mt.String(), target, ErrInvalidInput)
	}

	res.Key = storage.Key(string(target), mt.Extension(), s.now())
	url, err := s.store.Put(ctx, res.Key, data, res.ContentType)
	if err != nil {
		applog.L().Error("upload failed",
			zap.String("target", string(target)),
			zap.String("key", res.Key),
			zap.Error(err))
		return nil, fmt.Errorf("store upload: %w", err)
	}
	res.URL = url
	return res, nil
}
