package product

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount *Discount
		want     float64
	}{
		{"no discount", 120, nil, 120},
		{"twenty percent", 120, &Discount{Percentage: 20}, 96},
		{"rounds to cents", 9.99, &Discount{Percentage: 15}, 8.49},
		{"negative clamps to zero", 50, &Discount{Percentage: -10}, 50},
		{"over hundred clamps", 50, &Discount{Percentage: 150}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, Discount: tt.discount}
			assert.InDelta(t, tt.want, p.FinalPrice(), 0.0001)
		})
	}
}

func TestDiscountAmount(t *testing.T) {
	amount, ok := Product{Price: 80, PriceWithoutDiscount: ptr(100)}.DiscountAmount()
	assert.True(t, ok)
	assert.Equal(t, 20.0, amount)

	_, ok = Product{Price: 80}.DiscountAmount()
	assert.False(t, ok)

	_, ok = Product{Price: 80, PriceWithoutDiscount: ptr(0)}.DiscountAmount()
	assert.False(t, ok)
}

func TestDedupe(t *testing.T) {
	in := []Product{
		{ID: "a", Title: "A1"},
		{ID: "b", Title: "B"},
		{ID: "a", Title: "A2"},
		{ID: "c", Title: "C"},
		{ID: "b", Title: "B2"},
	}

	want := []Product{
		{ID: "a", Title: "A2"},
		{ID: "b", Title: "B2"},
		{ID: "c", Title: "C"},
	}

	if diff := cmp.Diff(want, Dedupe(in)); diff != "" {
		t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, Dedupe(nil))
}
