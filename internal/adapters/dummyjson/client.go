// internal/adapters/dummyjson/client.go
package dummyjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"catalog_query/internal/adapters/observability"
	"catalog_query/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int, timeout time.Duration) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var env productsEnvelope
	if err := c.get(ctx, "/products", c.base+"/products", &env); err != nil {
		return nil, err
	}
	if env.Products == nil {
		return []domain.Product{}, nil
	}
	return env.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.ProductDetail, error) {
	var out domain.ProductDetail
	if err := c.get(ctx, "/products/{id}", fmt.Sprintf("%s/products/%d", c.base, id), &out); err != nil {
		return domain.ProductDetail{}, err
	}
	return out, nil
}

// ---- Internals ----

// get performs one rate-limited GET and decodes the JSON body into out.
// Transport and decode errors are returned exactly as produced.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "catalog-query/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return json.NewDecoder(resp.Body).Decode(out)

	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound

	default:
		// small body snippet for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}
