package models

import (
	"strings"
	"time"
)

// GalleryImage is one picture on the gallery page.
type GalleryImage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryAll selects every image.
const CategoryAll = "All"

// GalleryCategories are the filter buttons shown on the gallery page.
var GalleryCategories = []string{CategoryAll, "Classroom", "Lab", "Events", "General"}

// DefaultGalleryCategory is applied when the admin form leaves category empty.
const DefaultGalleryCategory = "general"

// InCategory reports whether the image belongs to category, compared
// case-insensitively. An image without a category belongs to no category.
func (g *GalleryImage) InCategory(category string) bool {
	if g.Category == nil {
		return false
	}
	return strings.EqualFold(*g.Category, category)
}

// GalleryImageRequest is the admin "add image" form.
type GalleryImageRequest struct {
	Title    string `json:"title" form:"title" label:"Title" validate:"required"`
	ImageURL string `json:"image_url" form:"image_url" label:"Image URL" validate:"required"`
	Category string `json:"category" form:"category" label:"Category"`
}

// Validate checks that title and image URL are present.
func (r *GalleryImageRequest) Validate() error {
	if err := validateForm(r); err != nil {
		return err
	}
	if r.Category == "" {
		r.Category = DefaultGalleryCategory
	}
	r.Category = strings.ToLower(r.Category)
	return nil
}

// ToGalleryImage copies the form into a new row.
func (r *GalleryImageRequest) ToGalleryImage() *GalleryImage {
	return &GalleryImage{
		Title:    r.Title,
		ImageURL: r.ImageURL,
		Category: optional(r.Category),
	}
}
