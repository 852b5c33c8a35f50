package services

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// ImageMaterialiser writes decoded archive images to storage and maps
// their original URLs to public local URLs.
type ImageMaterialiser struct {
	files        driven.FileStore
	publicPrefix string
	dir          string
}

// NewImageMaterialiser creates a materialiser writing into dir (relative to
// the storage root) and publishing under publicPrefix.
func NewImageMaterialiser(files driven.FileStore, publicPrefix, dir string) *ImageMaterialiser {
	return &ImageMaterialiser{
		files:        files,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		dir:          strings.Trim(dir, "/"),
	}
}

// Materialise stores each image unless a file already exists at its path,
// in which case the existing file is used as is. Images that cannot be
// stored are logged and left out of the map.
func (m *ImageMaterialiser) Materialise(ctx context.Context, images []domain.DecodedImage) domain.ImageMap {
	entries := make(map[string]string, len(images))
	if len(images) == 0 {
		return domain.NewImageMap(entries)
	}

	if err := m.files.EnsureDir(ctx, m.dir); err != nil {
		logger.Warn("cannot create image directory %s: %v", m.dir, err)
		return domain.NewImageMap(entries)
	}

	for _, img := range images {
		rel := path.Join(m.dir, img.Filename)

		exists, err := m.files.Exists(ctx, rel)
		if err != nil {
			logger.Warn("cannot check image %s: %v", rel, err)
			continue
		}
		if exists {
			logger.Debug("reusing existing image %s", rel)
		} else if err := m.files.WriteFile(ctx, rel, img.Data); err != nil {
			logger.Warn("cannot write image %s: %v", rel, err)
			continue
		}

		entries[img.URL] = m.publicPrefix + "/" + rel
	}

	return domain.NewImageMap(entries)
}

// RewriteImageURLs replaces every mapped original URL in html with its
// local URL. It rewrites src and data-src attributes, CSS background-image
// urls, and the protocol-relative forms of both attributes.
func RewriteImageURLs(html string, images domain.ImageMap) string {
	images.Each(func(original, local string) {
		for _, r := range urlRewrites(original, local) {
			html = r.pattern.ReplaceAllString(html, r.replacement)
		}
	})
	return html
}

type urlRewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

var schemePrefix = regexp.MustCompile(`^https?:`)

func urlRewrites(original, local string) []urlRewrite {
	quoted := regexp.QuoteMeta(original)
	escapedLocal := strings.ReplaceAll(local, "$", "$$")

	rewrites := []urlRewrite{
		{regexp.MustCompile(`src="` + quoted + `"`), `src="` + escapedLocal + `"`},
		{regexp.MustCompile(`data-src="` + quoted + `"`), `data-src="` + escapedLocal + `"`},
		{
			regexp.MustCompile(`background-image:\s*url\((&quot;|["']?)` + quoted + `(&quot;|["']?)\)`),
			`background-image: url(${1}` + escapedLocal + `${2})`,
		},
	}

	if schemeless := schemePrefix.ReplaceAllString(original, ""); schemeless != original {
		quotedRel := regexp.QuoteMeta(schemeless)
		rewrites = append(rewrites,
			urlRewrite{regexp.MustCompile(`src="` + quotedRel + `"`), `src="` + escapedLocal + `"`},
			urlRewrite{regexp.MustCompile(`data-src="` + quotedRel + `"`), `data-src="` + escapedLocal + `"`},
		)
	}
	return rewrites
}
