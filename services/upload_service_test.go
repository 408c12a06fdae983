package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return "https://cdn.example.org/" + key, nil
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func TestUploadImage(t *testing.T) {
	store := &memoryStore{}
	svc := NewUploadService(store)
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }

	res, err := svc.Upload(context.Background(), UploadCarousel, pngBytes)
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.Regexp(t, `^carousel/2025/01/[0-9a-f-]{36}\.png$`, res.Key)
	assert.Equal(t, "https://cdn.example.org/"+res.Key, res.URL)
	assert.Contains(t, store.objects, res.Key)
}

func TestUploadRejectsWrongKind(t *testing.T) {
	svc := NewUploadService(&memoryStore{})
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadPapers, pngBytes)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, UploadNews, []byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, UploadPapers, []byte("%PDF-1.4\nbroken"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, UploadTarget("secrets"), pngBytes)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, UploadMedia, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadWithoutStorage(t *testing.T) {
	_, err := NewUploadService(nil).Upload(context.Background(), UploadMedia, pngBytes)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUploadStoreFailure(t *testing.T) {
	svc := NewUploadService(&memoryStore{err: errors.New("bucket gone")})
	_, err := svc.Upload(context.Background(), UploadMedia, pngBytes)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestParseUploadTarget(t *testing.T) {
	target, err := ParseUploadTarget("papers")
	require.NoError(t, err)
	assert.Equal(t, UploadPapers, target)

	_, err = ParseUploadTarget("../etc")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
