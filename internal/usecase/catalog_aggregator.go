package usecase

import "github.com/modulargunworks/catalog/internal/domain"

// CatalogAggregator folds products into a brand-keyed catalog and keeps the
// ledger of SKUs that resolved no images
type CatalogAggregator struct {
	catalog domain.Catalog
	missing []string
}

// NewCatalogAggregator creates an empty aggregator
func NewCatalogAggregator() *CatalogAggregator {
	return &CatalogAggregator{
		catalog: make(domain.Catalog),
		missing: []string{},
	}
}

// Add appends the product under its brand, attaching images when any exist
func (a *CatalogAggregator) Add(product domain.Product, images domain.Images) {
	if images.Empty() {
		product.Images = nil
		a.missing = append(a.missing, product.SKU)
	} else {
		img := images
		if img.Thumbnails == nil {
			img.Thumbnails = []string{}
		}
		if img.Fullsize == nil {
			img.Fullsize = []string{}
		}
		product.Images = &img
	}
	a.catalog[product.Brand] = append(a.catalog[product.Brand], product)
}

// Catalog returns the accumulated catalog
func (a *CatalogAggregator) Catalog() domain.Catalog {
	return a.catalog
}

// MissingImages returns the SKUs without images, in row order
func (a *CatalogAggregator) MissingImages() []string {
	return a.missing
}

// BrandCounts returns the number of products per brand
func (a *CatalogAggregator) BrandCounts() map[string]int {
	counts := make(map[string]int, len(a.catalog))
	for brand, products := range a.catalog {
		counts[brand] = len(products)
	}
	return counts
}
