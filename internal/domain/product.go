package domain

import (
	"bytes"
	"encoding/json"
)

// Product is one catalog record as served upstream. Optional fields are nil
// when the JSON field is absent or null. Raw keeps the full record so list
// results can be handed back without projection.
type Product struct {
	ID     int64
	Price  float64
	Weight *float64
	Rating *float64
	Tags   []string
	Title  *string
	Raw    json.RawMessage // full upstream payload
}

type productFields struct {
	ID     int64    `json:"id"`
	Price  float64  `json:"price"`
	Weight *float64 `json:"weight,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Title  *string  `json:"title,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	// a null record stays the zero Product: no tags or rating, price 0
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f productFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Product{
		ID:     f.ID,
		Price:  f.Price,
		Weight: f.Weight,
		Rating: f.Rating,
		Tags:   f.Tags,
		Title:  f.Title,
		Raw:    append(json.RawMessage(nil), data...),
	}
	return nil
}

// MarshalJSON writes the upstream record back untouched when it is known,
// otherwise only the typed fields.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(productFields{
		ID:     p.ID,
		Price:  p.Price,
		Weight: p.Weight,
		Rating: p.Rating,
		Tags:   p.Tags,
		Title:  p.Title,
	})
}

// HasTag reports an exact, case-sensitive match.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProductDetail is the single-product payload, which also carries reviews.
type ProductDetail struct {
	Product
	Reviews []Review
}

func (d *ProductDetail) UnmarshalJSON(data []byte) error {
	if err := d.Product.UnmarshalJSON(data); err != nil {
		return err
	}
	var aux struct {
		Reviews []Review `json:"reviews"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Reviews = aux.Reviews
	return nil
}

// MarshalJSON keeps reviews in the output when there is no upstream payload
// to echo back; Raw already contains them when set.
func (d ProductDetail) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return d.Raw, nil
	}
	return json.Marshal(struct {
		productFields
		Reviews []Review `json:"reviews"`
	}{
		productFields: productFields{
			ID:     d.ID,
			Price:  d.Price,
			Weight: d.Weight,
			Rating: d.Rating,
			Tags:   d.Tags,
			Title:  d.Title,
		},
		Reviews: d.Reviews,
	})
}
