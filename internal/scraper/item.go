package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// unknownTitle marks an item whose title could not be found.
const unknownTitle = "Unknown Product"

var (
	quantityMark = regexp.MustCompile(`(?i)[x×]\s*(\d+)`)
	quantityText = regexp.MustCompile(`(?i)(?:qty|quantity)\s*[:：]?\s*(\d+)|×\s*(\d+)`)
	specLine     = regexp.MustCompile(`^([^:：]{1,60})[:：]\s*(.+)$`)
)

var titleSelectors = []string{
	"[class*='info-name']",
	"[class*='product-title']",
	"[class*='item-title']",
	"[class*='product-name']",
	"[class*='item-name']",
	"a[href*='/item/']",
}

var genericTitleSelectors = []string{
	"[class*='title']:not([class*='store']):not([class*='seller']):not([class*='shop'])",
	"[class*='name']:not([class*='store']):not([class*='seller']):not([class*='shop'])",
}

func titleStrategies() []Strategy[string] {
	return []Strategy[string]{
		{Name: "title-attribute", Extract: func(s *goquery.Selection) (string, bool) {
			for _, selector := range titleSelectors {
				el := s.Find(selector).First()
				if el.Length() == 0 {
					continue
				}
				if v := usableTitle(el.AttrOr("title", "")); v != "" {
					return v, true
				}
				if v := usableTitle(el.Find("[title]").First().AttrOr("title", "")); v != "" {
					return v, true
				}
			}
			return "", false
		}},
		{Name: "title-text", Extract: func(s *goquery.Selection) (string, bool) {
			return firstUsableTitle(s, titleSelectors)
		}},
		{Name: "generic", Extract: func(s *goquery.Selection) (string, bool) {
			return firstUsableTitle(s, genericTitleSelectors)
		}},
		{Name: "img-alt", Extract: func(s *goquery.Selection) (string, bool) {
			var title string
			s.Find("img[alt]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
				title = usableTitle(img.AttrOr("alt", ""))
				return title == ""
			})
			return title, title != ""
		}},
	}
}

func firstUsableTitle(s *goquery.Selection, selectors []string) (string, bool) {
	for _, selector := range selectors {
		var title string
		s.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			title = usableTitle(el.Text())
			return title == ""
		})
		if title != "" {
			return title, true
		}
	}
	return "", false
}

func usableTitle(s string) string {
	s = cleanText(s)
	if s == "" || strings.EqualFold(s, unknownTitle) {
		return ""
	}
	return s
}

func quantityStrategies() []Strategy[int] {
	return []Strategy[int]{
		{Name: "quantity-element", Extract: func(s *goquery.Selection) (int, bool) {
			for _, selector := range []string{"[class*='quantity']", "[class*='info-number']", "[class*='qty']"} {
				var qty int
				s.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
					if m := quantityMark.FindStringSubmatch(textOf(el)); m != nil {
						qty = atoiPositive(m[1])
					}
					return qty == 0
				})
				if qty > 0 {
					return qty, true
				}
			}
			return 0, false
		}},
		{Name: "quantity-text", Extract: func(s *goquery.Selection) (int, bool) {
			m := quantityText.FindStringSubmatch(textOf(s))
			if m == nil {
				return 0, false
			}
			for _, g := range m[1:] {
				if q := atoiPositive(g); q > 0 {
					return q, true
				}
			}
			return 0, false
		}},
	}
}

func atoiPositive(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// extractItem assembles one product line. It returns false when the
// selection has no usable title.
func (sc *Scraper) extractItem(s *goquery.Selection, images domain.ImageMap) (domain.ParsedOrderItem, bool) {
	title, _, ok := FirstMatch(s, sc.rules.Title)
	if !ok {
		return domain.ParsedOrderItem{}, false
	}

	item := domain.ParsedOrderItem{ProductTitle: title, Quantity: 1}
	if qty, _, ok := FirstMatch(s, sc.rules.Quantity); ok {
		item.Quantity = qty
	}

	// An unscoped price is the unit price. The total is only read from a
	// total region so the same figure is never taken as both.
	unit, _, _ := extractPrice(s, sc.rules.UnitPriceRegions, sc.rules.PriceTiers)
	total := regionPrice(s, sc.rules.ItemTotalRegions, sc.rules.PriceTiers)
	item.UnitPrice, item.TotalPrice = reconcile(title, unit, item.Quantity, total)

	sc.resolveImage(&item, s, images)
	item.ProductURL = sc.productURL(s)
	item.Specifications = sc.specifications(s)

	component := sc.classifier.Classify(item.ProductTitle, item.Specifications)
	item.ParsedComponent = &component
	return item, true
}

// reconcile applies the price policy: an extracted total always wins over
// unit price times quantity, and is only computed when none was extracted.
func reconcile(title string, unit float64, qty int, total float64) (float64, float64) {
	if unit <= 0 || qty <= 0 {
		return unit, total
	}
	calculated := roundCents(unit * float64(qty))
	if total <= 0 {
		return unit, calculated
	}
	if math.Abs(total-calculated) > 0.01 {
		logger.Warn("price discrepancy for %q: %.2f x %d = %.2f but total is %.2f, assuming discount",
			title, unit, qty, calculated, total)
	}
	return unit, total
}

func (sc *Scraper) resolveImage(item *domain.ParsedOrderItem, s *goquery.Selection, images domain.ImageMap) {
	raw := sc.imageURL(s)
	if raw == "" {
		return
	}
	if sc.isLocal(raw) {
		item.SetLocalImage(sc.localPath(raw))
		return
	}
	normalised := sc.normaliseImageURL(raw)
	for _, key := range []string{raw, sc.absoluteImageURL(raw), normalised} {
		if local, ok := images.Lookup(key); ok {
			item.SetLocalImage(sc.localPath(local))
			return
		}
	}
	item.ImageURL = normalised
}

func (sc *Scraper) productURL(s *goquery.Selection) string {
	href := strings.TrimSpace(s.Find("a[href*='/item/']").First().AttrOr("href", ""))
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(sc.cfg.BaseURL, "/") + href
	default:
		return href
	}
}

// specifications collects label/value rows plus the selected variation.
// It returns nil when nothing was found.
func (sc *Scraper) specifications(s *goquery.Selection) map[string]string {
	specs := make(map[string]string)
	for _, selector := range sc.rules.SpecEntries {
		s.Find(selector).Each(func(_ int, el *goquery.Selection) {
			label, _ := firstText(el, "[class*='label']", "dt")
			value, _ := firstText(el, "[class*='value']", "dd")
			if label != "" && value != "" {
				specs[strings.TrimRight(label, ":： ")] = value
				return
			}
			if m := specLine.FindStringSubmatch(textOf(el)); m != nil {
				specs[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
			}
		})
	}
	if variation, ok := firstText(s, sc.rules.Variation...); ok {
		specs["variation"] = variation
	}
	if len(specs) == 0 {
		return nil
	}
	return specs
}
