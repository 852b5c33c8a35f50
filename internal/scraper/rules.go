package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is one named way of extracting a value from a selection.
type Strategy[T any] struct {
	Name    string
	Extract func(s *goquery.Selection) (T, bool)
}

// FirstMatch runs strategies in order and returns the first usable value
// together with the name of the strategy that produced it.
func FirstMatch[T any](s *goquery.Selection, strategies []Strategy[T]) (T, string, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy.Extract(s); ok {
			return v, strategy.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// Rules holds the ordered selector cascades and per-field strategies.
// New site-layout variants are supported by adding entries, not code paths.
type Rules struct {
	// OrderContainers are tried in order; the first selector matching at
	// least one element is used exclusively.
	OrderContainers []string

	// ItemContainers locate product lines inside an order container.
	// When none match, the order container itself is the single item.
	ItemContainers []string

	OrderNumber []Strategy[string]
	OrderDate   []Strategy[time.Time]
	Status      []Strategy[string]
	Seller      []Strategy[string]

	// OrderTotalRegions scope the price tiers for the order total.
	OrderTotalRegions []string

	// UnitPriceRegions and ItemTotalRegions scope the price tiers for items.
	UnitPriceRegions []string
	ItemTotalRegions []string

	// PriceTiers extract a price from a region, first success wins.
	PriceTiers []Strategy[float64]

	Title    []Strategy[string]
	Quantity []Strategy[int]

	// ImageContainers are elements whose inline style carries a background image.
	ImageContainers []string

	// SpecEntries are label/value specification rows.
	SpecEntries []string

	// Variation holds the single selected-variation text.
	Variation []string
}

// Default selector cascades, most specific first.
var (
	defaultOrderContainers = []string{
		"div.order-item",
		".order-item-wrap",
		"[class*='order-item-container']",
		".order-list-item",
		"[data-order-id]",
		"[class*='order-card']",
		"[class*='order-wrap']",
		"[class*='order']",
	}

	defaultItemContainers = []string{
		"[class*='order-item-content-body']",
		"[class*='order-item-product']",
		"[class*='product-item']",
		"[class*='item-product']",
	}

	defaultOrderTotalRegions = []string{
		"[class*='opt-price-total']",
		"[class*='order-total']",
		"[class*='total-price']",
		"[class*='price-total']",
	}

	defaultUnitPriceRegions = []string{
		"[class*='info-number']",
		"[class*='unit-price']",
		"[class*='item-price']",
		"[class*='product-price']",
	}

	defaultItemTotalRegions = []string{
		"[class*='item-total']",
		"[class*='price-total']",
		"[class*='subtotal']",
	}

	defaultImageContainers = []string{
		"[class*='order-item-content-img']",
		"[class*='product-img']",
		"[class*='item-img']",
		"[style*='background-image']",
	}

	defaultSpecEntries = []string{
		"[class*='spec-item']",
		"[class*='specs'] li",
		"[class*='specification'] li",
		"[class*='spec-list'] li",
	}

	defaultVariation = []string{
		"[class*='info-sku']",
		"[class*='sku-info']",
		"[class*='variation']",
	}
)

// DefaultRules returns the built-in cascades for the supported site layouts.
func DefaultRules() Rules {
	return Rules{
		OrderContainers:   clone(defaultOrderContainers),
		ItemContainers:    clone(defaultItemContainers),
		OrderNumber:       orderNumberStrategies(),
		OrderDate:         orderDateStrategies(),
		Status:            statusStrategies(),
		Seller:            sellerStrategies(),
		OrderTotalRegions: clone(defaultOrderTotalRegions),
		UnitPriceRegions:  clone(defaultUnitPriceRegions),
		ItemTotalRegions:  clone(defaultItemTotalRegions),
		PriceTiers:        priceTiers(),
		Title:             titleStrategies(),
		Quantity:          quantityStrategies(),
		ImageContainers:   clone(defaultImageContainers),
		SpecEntries:       clone(defaultSpecEntries),
		Variation:         clone(defaultVariation),
	}
}

// WithContainerSelectors returns a copy of r with extra order container
// selectors tried before the existing ones.
func (r Rules) WithContainerSelectors(selectors ...string) Rules {
	r.OrderContainers = prepend(r.OrderContainers, selectors)
	return r
}

// WithItemSelectors returns a copy of r with extra item container
// selectors tried before the existing ones.
func (r Rules) WithItemSelectors(selectors ...string) Rules {
	r.ItemContainers = prepend(r.ItemContainers, selectors)
	return r
}

func prepend(existing, extra []string) []string {
	out := make([]string, 0, len(existing)+len(extra))
	for _, s := range extra {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return append(out, existing...)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// findFirst returns the first element matching any selector, in selector order.
func findFirst(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if found := s.Find(selector).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// selfAndFind returns s itself when it matches selector, followed by matching descendants.
func selfAndFind(s *goquery.Selection, selector string) *goquery.Selection {
	return s.Filter(selector).AddSelection(s.Find(selector))
}
