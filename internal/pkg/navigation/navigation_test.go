package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductPath(t *testing.T) {
	assert.Equal(t, "/product/abc-123", ProductPath("abc-123"))
	assert.Equal(t, "/product/a%2Fb", ProductPath("a/b"))
}

func TestProductShareLinks(t *testing.T) {
	links := ProductShareLinks("https://shop.example", "p1", "Comfy Chair")

	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fshop.example%2Fproduct%2Fp1", links.Facebook)
	assert.Contains(t, links.Twitter, "url=https%3A%2F%2Fshop.example%2Fproduct%2Fp1")
	assert.Contains(t, links.WhatsApp, "Comfy+Chair")
}
