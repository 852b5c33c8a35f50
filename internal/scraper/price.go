package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var (
	priceNumber     = regexp.MustCompile(`\d[\d.,]*`)
	totalLabelPrice = regexp.MustCompile(`(?i)total\s*:\s*(?:[A-Z]{2,3}\s*)?[$€£]?\s*(\d[\d.,]*)`)
	currencyPrice   = regexp.MustCompile(`[$€£]\s*(\d[\d.,]*)`)
)

// ParsePrice reads the first number in a price text such as "US $1,234.56"
// or "12,34 €". It returns false when no non-negative number is present.
func ParsePrice(text string) (float64, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	raw := strings.TrimRight(priceNumber.FindString(compact), ".,")
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(normaliseSeparators(raw), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return roundCents(v), true
}

// normaliseSeparators turns "1,234.56", "1.234,56" and "12,34" into "1234.56" / "12.34".
func normaliseSeparators(raw string) string {
	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			return strings.Replace(raw, ",", ".", 1)
		}
		return strings.ReplaceAll(raw, ",", "")

	case lastComma >= 0:
		decimals := len(raw) - lastComma - 1
		if strings.Count(raw, ",") == 1 && decimals > 0 && decimals <= 2 {
			return strings.Replace(raw, ",", ".", 1)
		}
		return strings.ReplaceAll(raw, ",", "")

	case strings.Count(raw, ".") > 1:
		return strings.ReplaceAll(raw, ".", "")

	default:
		return raw
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// priceTiers cope with hashed CSS-in-JS class names: a versioned hash
// prefix first, then the translation-guard class, then any price-like
// class, and finally the raw text.
func priceTiers() []Strategy[float64] {
	return []Strategy[float64]{
		{Name: "hashed-wrap", Extract: firstPriceIn("[class*='es--wrap--']")},
		{Name: "notranslate", Extract: firstPriceIn(".notranslate")},
		{Name: "price-class", Extract: firstPriceIn("[class*='wrap'], [class*='price'], [class*='amount']")},
		{Name: "text", Extract: priceFromText},
	}
}

func firstPriceIn(selector string) func(*goquery.Selection) (float64, bool) {
	return func(s *goquery.Selection) (float64, bool) {
		var price float64
		found := false
		selfAndFind(s, selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if v, ok := ParsePrice(el.Text()); ok && v > 0 {
				price, found = v, true
				return false
			}
			return true
		})
		return price, found
	}
}

func priceFromText(s *goquery.Selection) (float64, bool) {
	text := textOf(s)
	for _, pattern := range []*regexp.Regexp{totalLabelPrice, currencyPrice} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if v, ok := ParsePrice(m[1]); ok && v > 0 {
				return v, true
			}
		}
	}
	return 0, false
}

// extractPrice applies the price tiers to the first region found, or to
// the whole selection when no region matches. The last result reports
// whether a region was found.
func extractPrice(s *goquery.Selection, regions []string, tiers []Strategy[float64]) (float64, string, bool) {
	scope, scoped := s, false
	if region := findFirst(s, regions); region != nil {
		scope, scoped = region, true
	}
	price, tier, ok := FirstMatch(scope, tiers)
	if !ok {
		return 0, "", scoped
	}
	return price, tier, scoped
}

// regionPrice applies the price tiers only inside the first region found.
func regionPrice(s *goquery.Selection, regions []string, tiers []Strategy[float64]) float64 {
	region := findFirst(s, regions)
	if region == nil {
		return 0
	}
	price, _, _ := FirstMatch(region, tiers)
	return price
}
