// Package navigation names the client-side routes the API points shoppers to.
package navigation

import "net/url"

const (
	Home       = "/"
	Cart       = "/cart"
	Wishlist   = "/wishlist"
	Comparison = "/product-comparison"
)

// ProductPath returns the detail route for a product id
func ProductPath(id string) string {
	return "/product/" + url.PathEscape(id)
}

// ShareLinks are the social share targets shown on a product page
type ShareLinks struct {
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	WhatsApp string `json:"whatsapp"`
}

// ProductShareLinks builds share links for the product detail URL under baseURL
func ProductShareLinks(baseURL, id, title string) ShareLinks {
	productURL := baseURL + ProductPath(id)
	escaped := url.QueryEscape(productURL)

	return ShareLinks{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escaped,
		Twitter:  "https://twitter.com/intent/tweet?url=" + escaped + "&text=" + url.QueryEscape("Check out this product"),
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape("Check out this product: "+title+" at "+productURL),
	}
}
