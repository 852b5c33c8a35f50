package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

func decodedImage(url, filename string, data string) domain.DecodedImage {
	return domain.DecodedImage{URL: url, Data: []byte(data), ContentType: "image/jpeg", Filename: filename}
}

func TestImageMaterialiser_WritesAndMaps(t *testing.T) {
	files := memory.NewFileStore()
	m := NewImageMaterialiser(files, "/uploads/", "/mhtml/")

	images := m.Materialise(context.Background(), []domain.DecodedImage{
		decodedImage("https://ae01.alicdn.com/kf/Sa1.jpg", "Sa1.jpg", "one"),
		decodedImage("image_1", "img_0a1b2c3d.png", "two"),
	})

	assert.Equal(t, 2, images.Len())
	local, ok := images.Lookup("https://ae01.alicdn.com/kf/Sa1.jpg")
	require.True(t, ok)
	assert.Equal(t, "/uploads/mhtml/Sa1.jpg", local)

	assert.True(t, files.HasDir("mhtml"))
	data, ok := files.ReadFile("mhtml/Sa1.jpg")
	require.True(t, ok)
	assert.Equal(t, "one", string(data))
	assert.Equal(t, []string{"mhtml/Sa1.jpg", "mhtml/img_0a1b2c3d.png"}, files.Paths("mhtml/"))
}

func TestImageMaterialiser_ReusesExistingFile(t *testing.T) {
	ctx := context.Background()
	files := memory.NewFileStore()
	require.NoError(t, files.WriteFile(ctx, "mhtml/Sa1.jpg", []byte("original")))
	m := NewImageMaterialiser(files, "/uploads", "mhtml")

	images := m.Materialise(ctx, []domain.DecodedImage{
		decodedImage("https://ae01.alicdn.com/kf/Sa1.jpg", "Sa1.jpg", "replacement"),
	})

	local, ok := images.Lookup("https://ae01.alicdn.com/kf/Sa1.jpg")
	require.True(t, ok)
	assert.Equal(t, "/uploads/mhtml/Sa1.jpg", local)
	data, _ := files.ReadFile("mhtml/Sa1.jpg")
	assert.Equal(t, "original", string(data))
}

func TestImageMaterialiser_WriteFailureIsOmitted(t *testing.T) {
	files := memory.NewFileStore()
	files.WriteErr = errors.New("disk full")
	m := NewImageMaterialiser(files, "/uploads", "mhtml")

	images := m.Materialise(context.Background(), []domain.DecodedImage{
		decodedImage("https://ae01.alicdn.com/kf/Sa1.jpg", "Sa1.jpg", "one"),
	})

	assert.Equal(t, 0, images.Len())
}

func TestImageMaterialiser_NoImages(t *testing.T) {
	files := memory.NewFileStore()
	m := NewImageMaterialiser(files, "/uploads", "mhtml")

	images := m.Materialise(context.Background(), nil)

	assert.Equal(t, 0, images.Len())
	assert.False(t, files.HasDir("mhtml"))
}

func TestRewriteImageURLs(t *testing.T) {
	const original = "https://ae01.alicdn.com/kf/Sa1.jpg"
	const local = "/uploads/mhtml/Sa1.jpg"
	images := domain.NewImageMap(map[string]string{original: local})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"src", `<img src="` + original + `">`, `<img src="` + local + `">`},
		{"data-src", `<img data-src="` + original + `">`, `<img data-src="` + local + `">`},
		{
			"background quoted entity",
			`<div style="background-image: url(&quot;` + original + `&quot;)">`,
			`<div style="background-image: url(&quot;` + local + `&quot;)">`,
		},
		{
			"background bare",
			`<div style="background-image:url(` + original + `)">`,
			`<div style="background-image: url(` + local + `)">`,
		},
		{
			"protocol-relative src",
			`<img src="//ae01.alicdn.com/kf/Sa1.jpg">`,
			`<img src="` + local + `">`,
		},
		{
			"protocol-relative data-src",
			`<img data-src="//ae01.alicdn.com/kf/Sa1.jpg">`,
			`<img data-src="` + local + `">`,
		},
		{"unrelated url", `<img src="https://example.com/a.jpg">`, `<img src="https://example.com/a.jpg">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteImageURLs(tt.in, images))
		})
	}
}

func TestRewriteImageURLs_MetacharactersAreLiteral(t *testing.T) {
	const original = "https://cdn.example.com/a.jpg?w=1&h=(2)"
	images := domain.NewImageMap(map[string]string{original: "/uploads/mhtml/a$1.jpg"})

	got := RewriteImageURLs(`<img src="`+original+`"><img src="https://cdn.example.com/aXjpg?w=1&h=(2)">`, images)

	assert.Equal(t, `<img src="/uploads/mhtml/a$1.jpg"><img src="https://cdn.example.com/aXjpg?w=1&h=(2)">`, got)
}
