package scraper

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	backgroundImageURL = regexp.MustCompile(`(?i)background-image\s*:\s*url\(\s*(?:&quot;|["'])?(.*?)(?:&quot;|["'])?\s*\)`)
	thumbnailSize      = regexp.MustCompile(`_\d{2,4}x\d{2,4}`)
)

// imageAttributes are checked in order on each candidate <img>.
var imageAttributes = []string{"src", "data-src", "data-lazy-src", "data-original", "data-img", "data-url"}

var rejectedImageMarkers = []string{"placeholder", "loading", "data:image"}

// imageURL finds the best product image reference in an item selection.
// The returned URL is not yet normalised.
func (sc *Scraper) imageURL(s *goquery.Selection) string {
	for _, selector := range sc.rules.ImageContainers {
		var found string
		selfAndFind(s, selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			style, ok := el.Attr("style")
			if !ok {
				return true
			}
			if m := backgroundImageURL.FindStringSubmatch(style); m != nil && usableImageURL(m[1]) {
				found = m[1]
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	imgs := s.Find("img")
	if sc.cfg.CDNHost != "" {
		if u := firstImageAttr(imgs.FilterFunction(func(_ int, img *goquery.Selection) bool {
			for _, attr := range imageAttributes {
				if strings.Contains(img.AttrOr(attr, ""), sc.cfg.CDNHost) {
					return true
				}
			}
			return false
		})); u != "" {
			return u
		}
	}
	return firstImageAttr(imgs)
}

func firstImageAttr(imgs *goquery.Selection) string {
	var found string
	imgs.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		for _, attr := range imageAttributes {
			if v := strings.TrimSpace(img.AttrOr(attr, "")); usableImageURL(v) {
				found = v
				return false
			}
		}
		return true
	})
	return found
}

func usableImageURL(u string) bool {
	if len(u) < 10 {
		return false
	}
	lower := strings.ToLower(u)
	for _, marker := range rejectedImageMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// absoluteImageURL makes protocol-relative and root-relative URLs absolute.
func (sc *Scraper) absoluteImageURL(u string) string {
	u = strings.TrimSpace(html.UnescapeString(u))
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "/") && !sc.isLocal(u):
		return strings.TrimRight(sc.cfg.BaseURL, "/") + u
	default:
		return u
	}
}

// normaliseImageURL returns the absolute URL, asking the CDN for a larger rendition.
func (sc *Scraper) normaliseImageURL(u string) string {
	u = sc.absoluteImageURL(u)
	if sc.cfg.CDNHost != "" && sc.cfg.ImageSize != "" && strings.Contains(u, sc.cfg.CDNHost) {
		u = thumbnailSize.ReplaceAllString(u, "_"+sc.cfg.ImageSize)
	}
	return u
}

func (sc *Scraper) isLocal(u string) bool {
	prefix := strings.TrimRight(sc.cfg.PublicPrefix, "/") + "/"
	return prefix != "/" && strings.HasPrefix(u, prefix)
}

// localPath strips the public prefix, leaving a path relative to the storage root.
func (sc *Scraper) localPath(u string) string {
	return strings.TrimPrefix(u, strings.TrimRight(sc.cfg.PublicPrefix, "/")+"/")
}
