package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type fakeObjectStore struct {
	uploaded map[string][]byte
	removed  []string
	err      error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploaded: make(map[string][]byte)}
}

func (s *fakeObjectStore) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded[key] = file
	return "https://cdn.example.com/" + key, nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func TestImageService_SelectForCaptionEmptyPool(t *testing.T) {
	s := NewImageService(t.TempDir(), nil, "")

	_, err := s.SelectForCaption("caption", nil)

	assert.ErrorIs(t, err, ErrNoImage)
}

func TestImageService_UploadAndSelect(t *testing.T) {
	store := newFakeObjectStore()
	s := NewImageService(t.TempDir(), store, "")

	asset, err := s.Upload(context.Background(), "photo.png", pngData)

	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(asset.Filename))
	assert.Equal(t, "https://cdn.example.com/"+asset.Filename, asset.URL)
	assert.Contains(t, store.uploaded, asset.Filename)

	_, err = os.Stat(asset.Path)
	assert.NoError(t, err)

	selected, err := s.SelectForCaption("caption", nil)
	require.NoError(t, err)
	assert.Equal(t, asset.Filename, selected.Filename)
}

func TestImageService_UploadRejectsNonImage(t *testing.T) {
	s := NewImageService(t.TempDir(), nil, "")

	_, err := s.Upload(context.Background(), "notes.txt", []byte("just text"))

	assert.Error(t, err)
}

func TestImageService_MirrorFailureKeepsLocalCopy(t *testing.T) {
	store := newFakeObjectStore()
	store.err = assert.AnError
	s := NewImageService(t.TempDir(), store, "")

	asset, err := s.Upload(context.Background(), "photo.png", pngData)

	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/"+asset.Filename, asset.URL)
}

func TestImageService_DeleteRemovesLocalAndMirror(t *testing.T) {
	store := newFakeObjectStore()
	s := NewImageService(t.TempDir(), store, "")

	asset, err := s.Upload(context.Background(), "photo.png", pngData)
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), asset.Filename))

	_, err = os.Stat(asset.Path)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, store.removed, asset.Filename)

	assert.Error(t, s.Delete(context.Background(), asset.Filename))
}

func TestImageService_Metadata(t *testing.T) {
	s := NewImageService(t.TempDir(), nil, "")

	asset, err := s.Upload(context.Background(), "photo.png", pngData)
	require.NoError(t, err)

	metadata, err := s.Metadata(asset.Filename)
	require.NoError(t, err)
	assert.Equal(t, "image/png", metadata.MimeType)
	assert.Equal(t, int64(len(pngData)), metadata.Size)

	_, err = s.Metadata("missing.png")
	assert.Error(t, err)
}
