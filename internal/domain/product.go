package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prices are encoded as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Feedback is a review left on a product. It is immutable once appended.
type Feedback struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    Principal `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is a marketplace listing.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Sold          uint64          `json:"sold"`
	AttachmentURL string          `json:"attachmentURL"`
	Likes         uint64          `json:"likes"`
	Feedbacks     []Feedback      `json:"feedbacks"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
	Author        Principal       `json:"author"`
}

// Clone returns a deep copy so callers can build a replacement record
// without touching the one they read.
func (p Product) Clone() Product {
	out := p
	out.Feedbacks = make([]Feedback, len(p.Feedbacks))
	copy(out.Feedbacks, p.Feedbacks)
	if p.UpdatedAt != nil {
		ts := *p.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}
