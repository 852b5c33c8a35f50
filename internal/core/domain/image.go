package domain

import (
	"crypto/md5" //nolint:gosec // used for stable file names, not security
	"encoding/hex"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// defaultImageExtension is used for unknown image content types.
const defaultImageExtension = ".jpg"

// syntheticImagePrefix prefixes identities of images with no location header.
const syntheticImagePrefix = "image_"

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SyntheticImageID returns the identity used for an image part with no location.
func SyntheticImageID(index int) string {
	return syntheticImagePrefix + strconv.Itoa(index)
}

// ImageExtension maps an image content type to a file extension.
func ImageExtension(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ext, ok := imageExtensions[ct]; ok {
		return ext
	}
	return defaultImageExtension
}

// ImageFilename derives a file name from an image identity URL and content type.
// It is a pure function: the same inputs always give the same name.
func ImageFilename(identity, contentType string) string {
	ext := ImageExtension(contentType)

	name := identity
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if path.Ext(name) == "" {
		name += ext
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")

	if len(name) < 5 || strings.HasPrefix(name, syntheticImagePrefix) {
		sum := md5.Sum([]byte(identity)) //nolint:gosec // see import
		name = "img_" + hex.EncodeToString(sum[:])[:8] + ext
	}
	return name
}

// ImageMap maps original image URLs to public local URLs.
// It is built once per import and never modified afterwards.
type ImageMap struct {
	entries map[string]string
}

// NewImageMap copies entries into a new ImageMap.
func NewImageMap(entries map[string]string) ImageMap {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return ImageMap{entries: copied}
}

// Lookup returns the local URL for an original URL.
func (m ImageMap) Lookup(original string) (string, bool) {
	local, ok := m.entries[original]
	return local, ok
}

// Len returns the number of mapped images.
func (m ImageMap) Len() int {
	return len(m.entries)
}

// Each calls fn for every entry. Iteration order is unspecified.
func (m ImageMap) Each(fn func(original, local string)) {
	for k, v := range m.entries {
		fn(k, v)
	}
}
