package domain

import "context"

// CatalogClient is the upstream product catalog.
type CatalogClient interface {
	// GET {base}/products
	ListProducts(ctx context.Context) ([]Product, error)
	// GET {base}/products/{id}
	GetProduct(ctx context.Context, id int64) (ProductDetail, error)
}
