package domain

// Review is a sub-record of a product detail. Upstream records are not
// consistent about which fields they set, so everything is optional.
type Review struct {
	ReviewerEmail *string  `json:"reviewerEmail,omitempty"`
	Email         *string  `json:"email,omitempty"`
	ReviewerName  *string  `json:"reviewerName,omitempty"`
	Comment       *string  `json:"comment,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}
