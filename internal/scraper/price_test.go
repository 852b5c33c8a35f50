package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"US $12.34", 12.34, true},
		{"$1,234.56", 1234.56, true},
		{"1.234,56 €", 1234.56, true},
		{"12,34 €", 12.34, true},
		{"US $ 3", 3, true},
		{"Total: US $25.00", 25, true},
		{"1,000", 1000, true},
		{"free", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func selectionOf(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("body")
}

func TestPriceTiers(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     float64
		wantTier string
	}{
		{
			name:     "hashed class wins",
			html:     `<div class="notranslate">$9.00</div><div class="es--wrap--x1"><span>US $4.50</span></div>`,
			want:     4.5,
			wantTier: "hashed-wrap",
		},
		{
			name:     "notranslate",
			html:     `<span class="notranslate">US $7.25</span>`,
			want:     7.25,
			wantTier: "notranslate",
		},
		{
			name:     "price-like class",
			html:     `<span class="item-amount-value">€3,10</span>`,
			want:     3.10,
			wantTier: "price-class",
		},
		{
			name:     "raw text",
			html:     `<p>Total: $18.40 incl. shipping</p>`,
			want:     18.40,
			wantTier: "text",
		},
		{
			name:     "zero prices are skipped",
			html:     `<div class="es--wrap--a">US $0.00</div><span class="notranslate">$2.00</span>`,
			want:     2,
			wantTier: "notranslate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, tier, ok := FirstMatch(selectionOf(t, tt.html), priceTiers())
			require.True(t, ok)
			assert.InDelta(t, tt.want, price, 0.0001)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestPriceTiers_NoPrice(t *testing.T) {
	_, _, ok := FirstMatch(selectionOf(t, `<p>No price here</p>`), priceTiers())
	assert.False(t, ok)
}

func TestExtractPrice_UsesFirstRegion(t *testing.T) {
	sel := selectionOf(t, `<span class="notranslate">$9.00</span><div class="unit-price"><span class="notranslate">$2.00</span></div>`)
	price, tier, scoped := extractPrice(sel, []string{".nope", ".unit-price"}, priceTiers())
	assert.InDelta(t, 2.00, price, 0.0001)
	assert.Equal(t, "notranslate", tier)
	assert.True(t, scoped)
}

func TestExtractPrice_NoRegionUsesSelection(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     float64
		wantTier string
	}{
		{"price class", `<span class="price">US $1.50</span>`, 1.50, "price-class"},
		{"raw text", `<p>Total: $4.20</p>`, 4.20, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, tier, scoped := extractPrice(selectionOf(t, tt.html), []string{".nope"}, priceTiers())
			assert.InDelta(t, tt.want, price, 0.0001)
			assert.Equal(t, tt.wantTier, tier)
			assert.False(t, scoped)
		})
	}
}

func TestExtractPrice_NothingFound(t *testing.T) {
	price, tier, _ := extractPrice(selectionOf(t, `<p>free</p>`), []string{".nope"}, priceTiers())
	assert.Zero(t, price)
	assert.Empty(t, tier)
}

func TestRegionPrice_MissingRegion(t *testing.T) {
	price := regionPrice(selectionOf(t, `<span class="notranslate">$2</span>`), []string{".nope"}, priceTiers())
	assert.Zero(t, price)
}
