package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	orderNumberLabel = regexp.MustCompile(`(?i)order\s*(?:id|number|no\.?)\s*[:：#]?\s*(\d{6,})`)
	orderDateMonth   = regexp.MustCompile(`(?i)(?:order\s*date|placed\s*on)\s*[:：]?\s*([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})`)
	orderDateNumeric = regexp.MustCompile(`(?i)(?:order\s*date|placed\s*on)\s*[:：]?\s*(\d{4}[-/.]\d{1,2}[-/.]\d{1,2}|\d{1,2}[-/.]\d{1,2}[-/.]\d{4})`)
	looseMonthDate   = regexp.MustCompile(`([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})`)
	looseNumericDate = regexp.MustCompile(`(\d{4}[-/.]\d{1,2}[-/.]\d{1,2}|\d{1,2}[-/.]\d{1,2}[-/.]\d{4})`)
)

var numericDateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
}

func orderNumberStrategies() []Strategy[string] {
	return []Strategy[string]{
		{Name: "label", Extract: func(s *goquery.Selection) (string, bool) {
			if m := orderNumberLabel.FindStringSubmatch(textOf(s)); m != nil {
				return m[1], true
			}
			return "", false
		}},
		{Name: "data-attribute", Extract: func(s *goquery.Selection) (string, bool) {
			for _, attr := range []string{"data-order-id", "data-order-number"} {
				el := selfAndFind(s, "["+attr+"]").First()
				if v := strings.TrimSpace(el.AttrOr(attr, "")); v != "" {
					return v, true
				}
			}
			return "", false
		}},
	}
}

func orderDateStrategies() []Strategy[time.Time] {
	return []Strategy[time.Time]{
		{Name: "month-name", Extract: func(s *goquery.Selection) (time.Time, bool) {
			return parseMonthDate(orderDateMonth.FindStringSubmatch(textOf(s)))
		}},
		{Name: "numeric", Extract: func(s *goquery.Selection) (time.Time, bool) {
			if m := orderDateNumeric.FindStringSubmatch(textOf(s)); m != nil {
				return parseNumericDate(m[1])
			}
			return time.Time{}, false
		}},
		{Name: "date-class", Extract: func(s *goquery.Selection) (time.Time, bool) {
			text, ok := firstText(s, "[class*='date']")
			if !ok {
				return time.Time{}, false
			}
			if t, ok := parseMonthDate(looseMonthDate.FindStringSubmatch(text)); ok {
				return t, true
			}
			if m := looseNumericDate.FindStringSubmatch(text); m != nil {
				return parseNumericDate(m[1])
			}
			return time.Time{}, false
		}},
	}
}

// parseMonthDate takes a [match, month, day, year] submatch.
func parseMonthDate(m []string) (time.Time, bool) {
	if len(m) != 4 {
		return time.Time{}, false
	}
	month := strings.ToLower(m[1])
	if len(month) > 3 {
		month = month[:3]
	}
	value := strings.ToUpper(month[:1]) + month[1:] + " " + m[2] + " " + m[3]
	t, err := time.Parse("Jan 2 2006", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseNumericDate(value string) (time.Time, bool) {
	for _, layout := range numericDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sellerStrategies() []Strategy[string] {
	return []Strategy[string]{
		textStrategy("store-name", "[class*='order-item-store-name']", "[class*='store-name']"),
		textStrategy("seller-class", "[class*='seller']", "[class*='store']", "[class*='shop']"),
		{Name: "store-link", Extract: func(s *goquery.Selection) (string, bool) {
			return firstText(s, "a[href*='store']")
		}},
	}
}
