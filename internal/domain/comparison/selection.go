// Package comparison holds the shopper's side-by-side product selection.
package comparison

import (
	"strconv"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Row labels of the comparison table
const (
	RowImage       = "Image"
	RowPrice       = "Price"
	RowDescription = "Description"
	RowDiscount    = "Discount"

	headerLabel = "Product"
	noDiscount  = "No discount"
)

// Selection is an immutable, ordered set of products chosen for comparison
type Selection struct {
	products []product.Product
}

// NewSelection creates a selection from products, keeping the first entry per id
func NewSelection(products ...product.Product) Selection {
	s := Selection{}
	for _, p := range products {
		if !s.Contains(p.ID) {
			s.products = append(s.products, p)
		}
	}
	return s
}

// Toggle adds p when absent and removes it when present
func (s Selection) Toggle(p product.Product) Selection {
	out := make([]product.Product, 0, len(s.products)+1)
	found := false
	for _, existing := range s.products {
		if existing.ID == p.ID {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, p)
	}
	return Selection{products: out}
}

// Clear returns an empty selection
func (s Selection) Clear() Selection {
	return Selection{}
}

func (s Selection) Contains(id string) bool {
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Products returns the selection in toggle order
func (s Selection) Products() []product.Product {
	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s Selection) Len() int {
	return len(s.products)
}

// Row is one attribute across all selected products
type Row struct {
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}

// Table is the selection pivoted into attribute rows, one column per product
type Table struct {
	Header []string `json:"header"`
	Rows   []Row    `json:"rows"`
}

// Columns is the number of product columns
func (t Table) Columns() int {
	if len(t.Header) == 0 {
		return 0
	}
	return len(t.Header) - 1
}

// Table pivots the selection. imageURL resolves the image cell of a product.
func (s Selection) Table(imageURL func(product.Product) string) Table {
	header := []string{headerLabel}
	images := make([]string, 0, len(s.products))
	prices := make([]string, 0, len(s.products))
	descriptions := make([]string, 0, len(s.products))
	discounts := make([]string, 0, len(s.products))

	for _, p := range s.products {
		header = append(header, p.Title)
		images = append(images, imageURL(p))
		prices = append(prices, "$"+formatAmount(p.Price))
		descriptions = append(descriptions, p.Description)

		if amount, ok := p.DiscountAmount(); ok {
			discounts = append(discounts, "$"+formatAmount(amount)+" off")
		} else {
			discounts = append(discounts, noDiscount)
		}
	}

	return Table{
		Header: header,
		Rows: []Row{
			{Label: RowImage, Cells: images},
			{Label: RowPrice, Cells: prices},
			{Label: RowDescription, Cells: descriptions},
			{Label: RowDiscount, Cells: discounts},
		},
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
