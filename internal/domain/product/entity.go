// internal/domain/product/entity.go
package product

import (
	"math"

	"github.com/your-org/storefront-backend/internal/infrastructure/cms"
	"github.com/your-org/storefront-backend/internal/pkg/navigation"
)

// Product represents a catalog product as served by the content store
type Product struct {
	ID                   string        `json:"_id"`
	Title                string        `json:"title"`
	Price                float64       `json:"price"`
	OriginalPrice        *float64      `json:"originalPrice,omitempty"`
	PriceWithoutDiscount *float64      `json:"priceWithoutDiscount,omitempty"`
	ImageURL             string        `json:"imageUrl,omitempty"`
	Image                *cms.ImageRef `json:"image,omitempty"`
	Description          string        `json:"description,omitempty"`
	IsNew                bool          `json:"isNew,omitempty"`
	IsSale               bool          `json:"isSale,omitempty"`
	Discount             *Discount     `json:"discount,omitempty"`
}

// Discount is a promotion attached to a product
type Discount struct {
	Percentage float64 `json:"percentage"`
	Code       string  `json:"code"`
}

// Category represents a product category
type Category struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	Products int    `json:"products"`
}

// Detail is a product with its computed price and share links
type Detail struct {
	Product
	FinalPrice float64               `json:"final_price"`
	Path       string                `json:"path"`
	Share      navigation.ShareLinks `json:"share"`
}

// FinalPrice returns the price after the product's discount, rounded to cents.
// The percentage is clamped to 0..100.
func (p Product) FinalPrice() float64 {
	if p.Discount == nil {
		return p.Price
	}
	pct := math.Min(math.Max(p.Discount.Percentage, 0), 100)
	return roundCents(p.Price - p.Price*pct/100)
}

// DiscountAmount returns priceWithoutDiscount minus price and whether a
// discount is present at all.
func (p Product) DiscountAmount() (float64, bool) {
	if p.PriceWithoutDiscount == nil || *p.PriceWithoutDiscount == 0 {
		return 0, false
	}
	return roundCents(*p.PriceWithoutDiscount - p.Price), true
}

// Dedupe returns products with each identifier once. An identifier keeps the
// position of its first occurrence and the value of its last.
func Dedupe(products []Product) []Product {
	index := make(map[string]int, len(products))
	out := make([]Product, 0, len(products))

	for _, p := range products {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}

	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
