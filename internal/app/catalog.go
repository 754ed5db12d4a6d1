package app

import (
	"context"

	"github.com/shopspring/decimal"

	"catalog_query/internal/domain"
)

const (
	BeautyTag = "beauty"

	MediumWeightMin = 3.0
	MediumWeightMax = 6.0

	HighRatingMin = 4.0
)

// CatalogService answers aggregate and filter queries over the upstream
// catalog. Every call does exactly one upstream request; upstream errors are
// returned untouched and no transform runs after a failure.
type CatalogService struct {
	client domain.CatalogClient
}

func NewCatalogService(c domain.CatalogClient) *CatalogService {
	return &CatalogService{client: c}
}

// SumAllPrices returns the sum of price over every product, 0 for none.
func (s *CatalogService) SumAllPrices(ctx context.Context) (float64, error) {
	ps, err := s.client.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	return sumPrices(ps), nil
}

// ReviewerEmails projects each review of product id to its reviewerEmail.
// The result is positional: a review without reviewerEmail yields nil even
// if it carries an "email" field.
func (s *CatalogService) ReviewerEmails(ctx context.Context, id int64) ([]*string, error) {
	d, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*string, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		out = append(out, r.ReviewerEmail)
	}
	return out, nil
}

func (s *CatalogService) BeautyProducts(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productsWithTag(ps, BeautyTag), nil
}

// SumOfPricesForMediumWeightProducts sums price over products weighing
// between MediumWeightMin and MediumWeightMax inclusive.
func (s *CatalogService) SumOfPricesForMediumWeightProducts(ctx context.Context) (float64, error) {
	ps, err := s.client.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	medium := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if inRange(p.Weight, MediumWeightMin, MediumWeightMax) {
			medium = append(medium, p)
		}
	}
	return sumPrices(medium), nil
}

func (s *CatalogService) HighlyRatedProducts(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if p.Rating != nil && *p.Rating >= HighRatingMin {
			out = append(out, p)
		}
	}
	return out, nil
}

/********** helpers **********/

// sumPrices adds in decimal so 10.99 + 20.50 + 5.25 comes out as 36.74.
func sumPrices(ps []domain.Product) float64 {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(decimal.NewFromFloat(p.Price))
	}
	return total.InexactFloat64()
}

func productsWithTag(ps []domain.Product, tag string) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// inRange treats a missing value as out of range.
func inRange(v *float64, lo, hi float64) bool {
	return v != nil && *v >= lo && *v <= hi
}
