package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNoImage signals an empty asset pool; draft generation treats it as
// non-fatal and proceeds without image fields.
var ErrNoImage = errors.New("no image available")

type ImageService interface {
	SelectForCaption(caption string, hashtags []string) (*ImageAsset, error)
	ListImages() ([]ImageAsset, error)
	Upload(ctx context.Context, originalName string, data []byte) (*ImageAsset, error)
	Delete(ctx context.Context, filename string) error
	Metadata(filename string) (*ImageMetadata, error)
}

type ImageAsset struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

type ImageMetadata struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// ObjectStore mirrors assets into public storage; R2Service implements it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, file []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

type imageService struct {
	imagesDir string
	store     ObjectStore
	publicURL string
}

func NewImageService(uploadDir string, store ObjectStore, publicURL string) ImageService {
	return &imageService{
		imagesDir: filepath.Join(uploadDir, "images"),
		store:     store,
		publicURL: publicURL,
	}
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

func (s *imageService) ListImages() ([]ImageAsset, error) {
	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	entries, err := os.ReadDir(s.imagesDir)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	var assets []ImageAsset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		assets = append(assets, ImageAsset{
			Filename: entry.Name(),
			Path:     filepath.Join(s.imagesDir, entry.Name()),
			URL:      s.urlFor(entry.Name()),
		})
	}
	return assets, nil
}

// SelectForCaption picks a deterministic image from the pool. The hashtags
// parameter is reserved for content matching.
func (s *imageService) SelectForCaption(caption string, hashtags []string) (*ImageAsset, error) {
	assets, err := s.ListImages()
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrNoImage
	}

	selected := assets[0]
	return &selected, nil
}

func (s *imageService) Upload(ctx context.Context, originalName string, data []byte) (*ImageAsset, error) {
	if len(data) == 0 {
		return nil, errors.New("no file provided")
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, errors.New("unsupported file type")
	}
	if _, ok := imageExtensions["."+kind.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", kind.Extension)
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	filename := id + "." + kind.Extension

	path := filepath.Join(s.imagesDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	url := "/uploads/images/" + filename
	if s.store != nil {
		publicURL, err := s.store.Upload(ctx, filename, data, kind.MIME.Value)
		if err != nil {
			// Keep the local copy; publishing will just lack a public URL.
			slog.Info("failed to mirror image to object storage", "error", err)
		} else {
			url = publicURL
		}
	}

	return &ImageAsset{Filename: filename, Path: path, URL: url}, nil
}

func (s *imageService) Delete(ctx context.Context, filename string) error {
	path := filepath.Join(s.imagesDir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return errors.New("image not found")
	}

	if err := os.Remove(path); err != nil {
		slog.Info(err.Error())
		return err
	}

	if s.store != nil {
		if err := s.store.Remove(ctx, filepath.Base(filename)); err != nil {
			slog.Info("failed to remove mirrored image", "error", err)
		}
	}
	return nil
}

func (s *imageService) Metadata(filename string) (*ImageMetadata, error) {
	path := filepath.Join(s.imagesDir, filepath.Base(filename))
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New("image not found")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}

	return &ImageMetadata{
		Filename: filepath.Base(filename),
		MimeType: kind.MIME.Value,
		Size:     info.Size(),
	}, nil
}

func (s *imageService) urlFor(filename string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + filename
	}
	return "/uploads/images/" + filename
}
