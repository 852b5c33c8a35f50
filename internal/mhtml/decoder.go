package mhtml

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.SnapshotDecoder = (*Decoder)(nil)

// minHTMLLength is the shortest decoded HTML accepted as a real page.
const minHTMLLength = 100

// Decoder decodes MHTML archives. It holds no per-document state.
type Decoder struct{}

// New creates a new MHTML decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode parses an archive into its HTML and image parts.
func (d *Decoder) Decode(content string) (*domain.ParsedDocument, error) {
	boundary, err := FindBoundary(content)
	if err != nil {
		return nil, err
	}
	logger.Debug("mhtml boundary: %q", boundary)

	parts := SplitParts(content, boundary)
	logger.Debug("mhtml parts: %d", len(parts))

	doc := &domain.ParsedDocument{}
	htmlFound := false

	for index, raw := range parts {
		part := ParsePart(raw)
		contentType := strings.ToLower(part.ContentType)

		switch {
		case !htmlFound && isHTMLPart(contentType):
			html, err := decodeHTML(part)
			if err != nil {
				logger.Warn("skipping html part %d: %v", index, err)
				continue
			}
			doc.HTMLContent = html
			htmlFound = true

		case strings.HasPrefix(contentType, "image/"):
			image, err := decodeImage(part, index)
			if err != nil {
				logger.Warn("skipping image part %d: %v", index, err)
				continue
			}
			doc.Images = append(doc.Images, image)
		}
	}

	if !htmlFound {
		return nil, domain.NewDocumentFormatError(domain.ReasonHTMLPartNotFound, "")
	}
	if len(doc.HTMLContent) < minHTMLLength {
		return nil, domain.NewDocumentFormatError(domain.ReasonHTMLTooShort,
			fmt.Sprintf("%d characters", len(doc.HTMLContent)))
	}

	logger.Info("mhtml decoded: %d bytes of html, %d images", len(doc.HTMLContent), len(doc.Images))
	return doc, nil
}

func isHTMLPart(contentType string) bool {
	return strings.Contains(contentType, "html") && !strings.HasPrefix(contentType, "multipart/")
}

// decodeHTML decodes the page part. Content with quoted-printable markers
// but no declared encoding is decoded as quoted-printable anyway.
func decodeHTML(part domain.MHTMLPart) (string, error) {
	switch part.Encoding {
	case encodingQuotedPrintable:
		return string(DecodeQuotedPrintable(part.Content)), nil
	case encodingBase64:
		data, err := DecodeContent(part.Content, part.Encoding)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "":
		if looksQuotedPrintable(part.Content) {
			logger.Debug("html part has no transfer encoding but looks quoted-printable")
			return string(DecodeQuotedPrintable(part.Content)), nil
		}
		return part.Content, nil
	default:
		return part.Content, nil
	}
}

func decodeImage(part domain.MHTMLPart, index int) (domain.DecodedImage, error) {
	identity := part.Header("content-location")
	if identity == "" {
		identity = part.Header("location")
	}
	if identity == "" {
		identity = domain.SyntheticImageID(index)
	}

	data, err := DecodeContent(part.Content, part.Encoding)
	if err != nil {
		return domain.DecodedImage{}, fmt.Errorf("%s: %w", identity, err)
	}
	if len(data) == 0 {
		return domain.DecodedImage{}, fmt.Errorf("%s: empty image", identity)
	}

	contentType := part.ContentType
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return domain.DecodedImage{
		URL:         identity,
		Data:        data,
		ContentType: contentType,
		Filename:    domain.ImageFilename(identity, contentType),
	}, nil
}
