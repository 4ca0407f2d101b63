package usecase

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/modulargunworks/catalog/internal/domain"
)

// ImageMatchOptions controls which files count as source images
type ImageMatchOptions struct {
	Extensions   []string // accepted raster extensions, with dot
	CanonicalExt string   // extension of the derived transport file
}

// DefaultImageMatchOptions accepts jpeg/png sources and derives .webp names
func DefaultImageMatchOptions() ImageMatchOptions {
	return ImageMatchOptions{
		Extensions:   []string{".jpg", ".jpeg", ".png"},
		CanonicalExt: ".webp",
	}
}

// MatchImages returns the derived canonical file names for every candidate
// whose name contains the SKU (case-insensitive) and has an accepted
// extension. Results follow candidate order, one entry per qualifying
// candidate, so "A1.jpg" and "A1.png" both yield "A1.webp".
func MatchImages(sku string, candidates []string, opts ImageMatchOptions) []string {
	needle := strings.ToLower(strings.TrimSpace(sku))
	if needle == "" {
		return nil
	}

	var matches []string
	for _, name := range candidates {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, needle) || !hasExtension(lower, opts.Extensions) {
			continue
		}
		matches = append(matches, strings.TrimSuffix(name, filepath.Ext(name))+opts.CanonicalExt)
	}
	return matches
}

func hasExtension(lowerName string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(lowerName, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ImageResolverConfig locates the image directories
type ImageResolverConfig struct {
	Root         string // shared images directory, e.g. "images"
	AssetRoot    string // full-size directory name under Root
	ThumbnailDir string // thumbnail directory name under Root
	Match        ImageMatchOptions
}

// ImageResolver finds the images belonging to a SKU
type ImageResolver struct {
	store  domain.ImageStore
	config ImageResolverConfig
}

// NewImageResolver creates a resolver over the given store
func NewImageResolver(store domain.ImageStore, config ImageResolverConfig) *ImageResolver {
	if len(config.Match.Extensions) == 0 || config.Match.CanonicalExt == "" {
		defaults := DefaultImageMatchOptions()
		if len(config.Match.Extensions) == 0 {
			config.Match.Extensions = defaults.Extensions
		}
		if config.Match.CanonicalExt == "" {
			config.Match.CanonicalExt = defaults.CanonicalExt
		}
	}
	return &ImageResolver{store: store, config: config}
}

// Resolve returns the relative paths of the SKU's full-size images and
// thumbnails. Missing directories and zero matches give empty sequences.
func (r *ImageResolver) Resolve(ctx context.Context, sku string) domain.Images {
	images := domain.Images{Thumbnails: []string{}, Fullsize: []string{}}

	fullDir := filepath.Join(r.config.Root, r.config.AssetRoot)
	thumbDir := filepath.Join(r.config.Root, r.config.ThumbnailDir)

	names, err := r.store.List(ctx, fullDir)
	if err != nil || len(names) == 0 {
		return images
	}

	for _, derived := range MatchImages(sku, names, r.config.Match) {
		if r.store.Exists(ctx, fullDir, derived) {
			images.Fullsize = append(images.Fullsize, relPath(r.config.AssetRoot, derived))
		}
		if r.store.Exists(ctx, thumbDir, derived) {
			images.Thumbnails = append(images.Thumbnails, relPath(r.config.ThumbnailDir, derived))
		}
	}
	return images
}

// Reset drops any directory snapshot the store keeps between runs
func (r *ImageResolver) Reset(ctx context.Context) {
	if s, ok := r.store.(interface{ Reset(context.Context) }); ok {
		s.Reset(ctx)
	}
}

func relPath(dir, name string) string {
	return path.Join(filepath.ToSlash(dir), name)
}
