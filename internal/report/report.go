// Package report runs every catalog query once and collects the outcomes.
package report

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"catalog_query/internal/adapters/observability"
	"catalog_query/internal/app"
)

// Result is one operation's outcome. Exactly one of Value or Error is set.
type Result struct {
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

type Report struct {
	ProductID int64             `json:"product_id"`
	Results   map[string]Result `json:"results"`
}

// Failed reports whether any operation returned an error.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return true
		}
	}
	return false
}

type operation struct {
	name string
	run  func(ctx context.Context) (any, error)
}

func operations(svc *app.CatalogService, productID int64) []operation {
	return []operation{
		{"sum_all_prices", func(ctx context.Context) (any, error) { return svc.SumAllPrices(ctx) }},
		{"reviewer_emails", func(ctx context.Context) (any, error) { return svc.ReviewerEmails(ctx, productID) }},
		{"beauty_products", func(ctx context.Context) (any, error) { return svc.BeautyProducts(ctx) }},
		{"medium_weight_price_sum", func(ctx context.Context) (any, error) { return svc.SumOfPricesForMediumWeightProducts(ctx) }},
		{"highly_rated_products", func(ctx context.Context) (any, error) { return svc.HighlyRatedProducts(ctx) }},
	}
}

// Run executes all operations with at most workers in flight. A failing
// operation does not cancel the others.
func Run(ctx context.Context, svc *app.CatalogService, productID int64, workers int) Report {
	if workers <= 0 {
		workers = 1
	}
	ops := operations(svc, productID)
	sem := semaphore.NewWeighted(int64(workers))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = Report{ProductID: productID, Results: make(map[string]Result, len(ops))}
	)
	record := func(name string, v any, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			out.Results[name] = Result{Error: err.Error()}
			return
		}
		out.Results[name] = Result{Value: v}
	}

	for _, op := range ops {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			record(op.name, nil, err)
			continue
		}

		wg.Add(1)
		go func(op operation) {
			defer wg.Done()
			defer sem.Release(1)

			v, err := op.run(ctx)
			observability.ObserveOperation(op.name, err)
			record(op.name, v, err)
		}(op)
	}

	wg.Wait()
	return out
}
