package wishlist

import "github.com/your-org/storefront-backend/internal/domain/product"

// Wishlist is an immutable set of products kept in insertion order
type Wishlist struct {
	items []product.Product
}

// New creates a wishlist from items, keeping the first entry per id
func New(items ...product.Product) Wishlist {
	w := Wishlist{}
	for _, p := range items {
		w = w.Add(p)
	}
	return w
}

// Add returns a wishlist containing p. Adding a present id is a no-op.
func (w Wishlist) Add(p product.Product) Wishlist {
	if w.Contains(p.ID) {
		return w
	}
	items := make([]product.Product, len(w.items), len(w.items)+1)
	copy(items, w.items)
	return Wishlist{items: append(items, p)}
}

// Remove returns a wishlist without id
func (w Wishlist) Remove(id string) Wishlist {
	items := make([]product.Product, 0, len(w.items))
	for _, p := range w.items {
		if p.ID != id {
			items = append(items, p)
		}
	}
	return Wishlist{items: items}
}

// Toggle removes p when present and adds it otherwise
func (w Wishlist) Toggle(p product.Product) Wishlist {
	if w.Contains(p.ID) {
		return w.Remove(p.ID)
	}
	return w.Add(p)
}

func (w Wishlist) Contains(id string) bool {
	for _, p := range w.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (w Wishlist) Items() []product.Product {
	items := make([]product.Product, len(w.items))
	copy(items, w.items)
	return items
}

func (w Wishlist) Len() int {
	return len(w.items)
}
