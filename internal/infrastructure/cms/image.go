// internal/infrastructure/cms/image.go
package cms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
)

const imageCDN = "https://cdn.sanity.io/images"

// ImageRef is an image field as stored in the content store
type ImageRef struct {
	Asset struct {
		Ref string `json:"_ref,omitempty"`
		URL string `json:"url,omitempty"`
	} `json:"asset"`
}

// ImageBuilder resolves image asset references to CDN URLs
type ImageBuilder struct {
	projectID    string
	dataset      string
	defaultWidth int
}

// NewImageBuilder creates an image URL builder for the configured project
func NewImageBuilder(cfg *config.Config) *ImageBuilder {
	return &ImageBuilder{
		projectID:    cfg.CMS.ProjectID,
		dataset:      cfg.CMS.Dataset,
		defaultWidth: cfg.CMS.ImageWidth,
	}
}

// DefaultWidth is the width used by comparison and listing images
func (b *ImageBuilder) DefaultWidth() int {
	return b.defaultWidth
}

// URL returns the CDN URL of img at the given width, or "" when img has no usable asset
func (b *ImageBuilder) URL(img *ImageRef, width int) string {
	if img == nil {
		return ""
	}
	if img.Asset.URL != "" {
		return WithWidth(img.Asset.URL, width)
	}
	return b.FromRef(img.Asset.Ref, width)
}

// FromRef turns an asset reference of the form image-<id>-<W>x<H>-<ext> into a URL
func (b *ImageBuilder) FromRef(ref string, width int) string {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" || parts[3] == "" {
		return ""
	}

	dims := strings.Split(parts[2], "x")
	if len(dims) != 2 {
		return ""
	}
	for _, d := range dims {
		if n, err := strconv.Atoi(d); err != nil || n <= 0 {
			return ""
		}
	}

	raw := fmt.Sprintf("%s/%s/%s/%s-%s.%s", imageCDN, b.projectID, b.dataset, parts[1], parts[2], parts[3])
	return WithWidth(raw, width)
}

// WithWidth sets the w query parameter on an already resolved image URL
func WithWidth(raw string, width int) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if width > 0 {
		q := u.Query()
		q.Set("w", strconv.Itoa(width))
		u.RawQuery = q.Encode()
	}
	return u.String()
}
