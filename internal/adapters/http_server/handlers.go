// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"catalog_query/internal/adapters/observability"
	"catalog_query/internal/app"
	"catalog_query/internal/domain"
)

type Handlers struct{ Q *app.CatalogService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type sumResponse struct {
	Sum float64 `json:"sum"`
}

type emailsResponse struct {
	Emails []*string `json:"emails"` // null where a review has no reviewerEmail
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1/products", func(r chi.Router) {
		r.Get("/prices/sum", h.sumAllPrices)
		r.Get("/{id}/reviewer-emails", h.reviewerEmails)
		r.Get("/beauty", h.beautyProducts)
		r.Get("/medium-weight/prices/sum", h.mediumWeightPriceSum)
		r.Get("/highly-rated", h.highlyRated)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeUpstreamError maps a failed catalog call to 404 or 502; the detail is
// the upstream error message as-is.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	log.Warn().Err(err).Str("operation", op).Msg("catalog query failed")
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	writeProblem(w, http.StatusBadGateway, "Upstream Failure", err.Error())
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response encoding failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) sumAllPrices(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Q.SumAllPrices(r.Context())
	observability.ObserveOperation("sum_all_prices", err)
	if err != nil {
		writeUpstreamError(w, "sum_all_prices", err)
		return
	}
	writeJSON(w, r, sumResponse{Sum: sum})
}

func (h *Handlers) reviewerEmails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	emails, err := h.Q.ReviewerEmails(r.Context(), id)
	observability.ObserveOperation("reviewer_emails", err)
	if err != nil {
		writeUpstreamError(w, "reviewer_emails", err)
		return
	}
	writeJSON(w, r, emailsResponse{Emails: emails})
}

func (h *Handlers) beautyProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Q.BeautyProducts(r.Context())
	observability.ObserveOperation("beauty_products", err)
	if err != nil {
		writeUpstreamError(w, "beauty_products", err)
		return
	}
	writeJSON(w, r, productsResponse{Products: ps})
}

func (h *Handlers) mediumWeightPriceSum(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Q.SumOfPricesForMediumWeightProducts(r.Context())
	observability.ObserveOperation("medium_weight_price_sum", err)
	if err != nil {
		writeUpstreamError(w, "medium_weight_price_sum", err)
		return
	}
	writeJSON(w, r, sumResponse{Sum: sum})
}

func (h *Handlers) highlyRated(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Q.HighlyRatedProducts(r.Context())
	observability.ObserveOperation("highly_rated_products", err)
	if err != nil {
		writeUpstreamError(w, "highly_rated_products", err)
		return
	}
	writeJSON(w, r, productsResponse{Products: ps})
}
