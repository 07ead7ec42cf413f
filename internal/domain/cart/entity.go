// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"math"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ErrInvalidQuantity is returned when a line item quantity is below one
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Policy decides what adding an already present product does
type Policy string

const (
	// PolicyAppend adds a separate line item for every add
	PolicyAppend Policy = "append"
	// PolicyMerge increments the quantity of the existing line item
	PolicyMerge Policy = "merge"
)

// LineItem is a product in the cart with its quantity
type LineItem struct {
	product.Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity
func (l LineItem) LineTotal() float64 {
	return math.Round(l.Price*float64(l.Quantity)*100) / 100
}

// Cart is an immutable cart snapshot. Every mutation returns a new Cart.
type Cart struct {
	items  []LineItem
	policy Policy
}

// New creates a cart snapshot holding items
func New(policy Policy, items ...LineItem) Cart {
	if policy != PolicyMerge {
		policy = PolicyAppend
	}
	return Cart{items: append([]LineItem(nil), items...), policy: policy}
}

// Add returns a cart with quantity of p added
func (c Cart) Add(p product.Product, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}

	items := c.Items()
	if c.policy == PolicyMerge {
		for i := range items {
			if items[i].ID == p.ID {
				items[i].Quantity += quantity
				return Cart{items: items, policy: c.policy}, nil
			}
		}
	}

	items = append(items, LineItem{Product: p, Quantity: quantity})
	return Cart{items: items, policy: c.policy}, nil
}

// Remove returns a cart without any line item for id
func (c Cart) Remove(id string) Cart {
	items := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return Cart{items: items, policy: c.policy}
}

// Clear returns an empty cart with the same policy
func (c Cart) Clear() Cart {
	return Cart{policy: c.policy}
}

// Items returns a copy of the line items in insertion order
func (c Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len is the number of line items, not the summed quantity
func (c Cart) Len() int {
	return len(c.items)
}

// TotalQuantity sums quantities over all line items
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums line totals
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"item_count"`     // Number of line items
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	SubTotal      float64 `json:"sub_total"`
}

// Totals computes the cart totals
func (c Cart) Totals() Totals {
	return Totals{
		ItemCount:     c.Len(),
		TotalQuantity: c.TotalQuantity(),
		SubTotal:      c.Subtotal(),
	}
}
