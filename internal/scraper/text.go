package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRun = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs (including non-breaking spaces) and trims.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// textOf returns the cleaned rendered text of a selection.
func textOf(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	return cleanText(s.Text())
}

// firstText returns the first non-empty text among elements matching selectors.
func firstText(s *goquery.Selection, selectors ...string) (string, bool) {
	for _, selector := range selectors {
		var found string
		s.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			found = textOf(el)
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}
