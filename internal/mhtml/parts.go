package mhtml

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// Boundary patterns in the order they are tried.
var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`boundary="([^"]+)"`),
	regexp.MustCompile(`boundary=([^\s;"']+)`),
	regexp.MustCompile(`boundary='([^']+)'`),
}

// FindBoundary discovers the multipart boundary declared in content.
func FindBoundary(content string) (string, error) {
	for _, pattern := range boundaryPatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			return m[1], nil
		}
	}
	return "", domain.NewDocumentFormatError(domain.ReasonBoundaryNotFound, "")
}

// SplitParts splits content on "--boundary" delimiters.
// The preamble before the first delimiter, empty fragments and the
// closing "--" fragment are dropped.
func SplitParts(content, boundary string) []string {
	fragments := strings.Split(content, "--"+boundary)
	if len(fragments) < 2 {
		return nil
	}

	parts := make([]string, 0, len(fragments)-1)
	for _, fragment := range fragments[1:] {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" || trimmed == "--" {
			continue
		}
		if strings.HasPrefix(fragment, "--") {
			// Closing delimiter; anything after it is epilogue.
			continue
		}
		parts = append(parts, fragment)
	}
	return parts
}

// ParsePart parses an RFC 822 style header block followed by content.
// Header names are lower-cased and the last duplicate wins. Lines that
// start with a space or tab continue the previous header. The headers
// end at the first blank line.
func ParsePart(raw string) domain.MHTMLPart {
	headers := make(map[string]string)
	rest := strings.TrimLeft(raw, " \t\r\n")
	lastKey := ""

	for rest != "" {
		line, remainder, found := strings.Cut(rest, "\n")
		line = strings.TrimSuffix(line, "\r")
		if !found {
			remainder = ""
		}

		if strings.TrimSpace(line) == "" {
			rest = remainder
			break
		}

		switch {
		case (line[0] == ' ' || line[0] == '\t') && lastKey != "":
			headers[lastKey] += " " + strings.TrimSpace(line)
		default:
			if key, value, ok := strings.Cut(line, ":"); ok {
				lastKey = strings.ToLower(strings.TrimSpace(key))
				headers[lastKey] = strings.TrimSpace(value)
			}
		}
		rest = remainder
	}

	return domain.MHTMLPart{
		Headers:     headers,
		Content:     trimDelimiterNewline(rest),
		ContentType: headers["content-type"],
		Encoding:    strings.ToLower(headers["content-transfer-encoding"]),
	}
}

// trimDelimiterNewline removes the line break that belongs to the next delimiter.
func trimDelimiterNewline(content string) string {
	content = strings.TrimSuffix(content, "\n")
	return strings.TrimSuffix(content, "\r")
}
