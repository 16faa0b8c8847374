package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/storage"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/ws"
)

// GalleryService manages gallery images.
type GalleryService interface {
	// ListPublic loads the gallery for visitors, falling back to the default
	// images, then keeps the images in category ("" or "All" keeps all).
	ListPublic(ctx context.Context, category string) Loaded[models.GalleryImage]
	List(ctx context.Context, actor *models.User) ([]models.GalleryImage, error)
	Create(ctx context.Context, actor *models.User, req *models.GalleryImageRequest) (*models.GalleryImage, error)
	// Upload stores an image file and returns its public URL.
	Upload(ctx context.Context, actor *models.User, file UploadFile) (string, error)
}

// UploadFile is an image received from a multipart form.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type galleryService struct {
	repo      repository.GalleryRepository
	loader    *ListLoader[models.GalleryImage]
	uploader  storage.Uploader
	maxSize   int64
	publisher ws.EventPublisher
}

// NewGalleryService wires the service. uploader and publisher may be nil;
// without an uploader Upload is refused.
func NewGalleryService(
	repo repository.GalleryRepository,
	uploader storage.Uploader,
	maxSize int64,
	publisher ws.EventPublisher,
) GalleryService {
	return &galleryService{
		repo:      repo,
		loader:    NewListLoader(CollectionGalleryImages, repo.List, DefaultGalleryImages()),
		uploader:  uploader,
		maxSize:   maxSize,
		publisher: publisher,
	}
}

func (s *galleryService) ListPublic(ctx context.Context, category string) Loaded[models.GalleryImage] {
	loaded := s.loader.Load(ctx)
	loaded.Items = FilterByCategory(loaded.Items, category)
	return loaded
}

func (s *galleryService) List(ctx context.Context, actor *models.User) ([]models.GalleryImage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *galleryService) Create(ctx context.Context, actor *models.User, req *models.GalleryImageRequest) (*models.GalleryImage, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	img := req.ToGalleryImage()
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}

	publishContentUpdate(s.publisher, CollectionGalleryImages)
	return img, nil
}

func (s *galleryService) Upload(ctx context.Context, actor *models.User, file UploadFile) (string, error) {
	if err := requireAdmin(actor); err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", fmt.Errorf("%w: image uploads are not configured", pkg.ErrBadRequest)
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	mimeBase := strings.TrimSpace(strings.Split(file.ContentType, ";")[0])
	ext, ok := allowedImageTypes[mimeBase]
	if !ok {
		return "", fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	key := "gallery/" + hex.EncodeToString(randomBytes) + "_" + sanitizeFilename(file.Filename, ext)

	return s.uploader.Upload(ctx, key, mimeBase, file.Body)
}

// FilterByCategory keeps the images whose category equals category, ignoring
// case. "" and "All" keep everything; images without a category only
// survive those.
func FilterByCategory(images []models.GalleryImage, category string) []models.GalleryImage {
	if category == "" || strings.EqualFold(category, models.CategoryAll) {
		return images
	}

	filtered := make([]models.GalleryImage, 0, len(images))
	for _, img := range images {
		if img.InCategory(category) {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

// sanitizeFilename keeps the base name and forces the extension to match
// the content type.
func sanitizeFilename(name, ext string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '-'
		}
		return -1
	}, strings.TrimSuffix(name, filepath.Ext(name)))

	if name == "" {
		name = "image"
	}
	return name + ext
}
