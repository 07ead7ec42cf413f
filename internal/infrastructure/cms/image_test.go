package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageBuilderFromRef(t *testing.T) {
	b := &ImageBuilder{projectID: "abc123", dataset: "production", defaultWidth: 200}

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "jpg asset",
			ref:  "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg",
			want: "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?w=200",
		},
		{name: "missing prefix", ref: "file-abc-10x10-png", want: ""},
		{name: "bad dimensions", ref: "image-abc-10by10-png", want: ""},
		{name: "zero width", ref: "image-abc-0x10-png", want: ""},
		{name: "empty", ref: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.FromRef(tt.ref, 200))
		})
	}
}

func TestImageBuilderURL(t *testing.T) {
	b := &ImageBuilder{projectID: "abc123", dataset: "production"}

	resolved := &ImageRef{}
	resolved.Asset.URL = "https://cdn.sanity.io/images/abc123/production/x-10x10.png"
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/x-10x10.png?w=200", b.URL(resolved, 200))

	ref := &ImageRef{}
	ref.Asset.Ref = "image-x-10x10-png"
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/x-10x10.png?w=50", b.URL(ref, 50))

	assert.Empty(t, b.URL(nil, 200))
	assert.Empty(t, b.URL(&ImageRef{}, 200))
}

func TestWithWidthKeepsExistingQuery(t *testing.T) {
	assert.Equal(t, "https://cdn.example/a.png?fm=webp&w=120", WithWidth("https://cdn.example/a.png?fm=webp", 120))
	assert.Equal(t, "https://cdn.example/a.png", WithWidth("https://cdn.example/a.png", 0))
}
