package mhtml

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// Transfer encodings.
const (
	encodingBase64          = "base64"
	encodingQuotedPrintable = "quoted-printable"
	encoding8Bit            = "8bit"
	encodingBinary          = "binary"
)

var (
	softLineBreak = regexp.MustCompile(`=\r?\n`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// DecodeContent decodes a part body according to its transfer encoding.
// Unknown encodings are treated as UTF-8 text.
func DecodeContent(content, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", encodingBinary, encoding8Bit:
		return []byte(content), nil
	case encodingBase64:
		return decodeBase64(content)
	case encodingQuotedPrintable:
		return DecodeQuotedPrintable(content), nil
	default:
		return []byte(content), nil
	}
}

func decodeBase64(content string) ([]byte, error) {
	compact := whitespace.ReplaceAllString(content, "")
	data, err := base64.StdEncoding.DecodeString(compact)
	if err == nil {
		return data, nil
	}
	// Some writers drop the padding.
	data, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(compact, "="))
	if rawErr != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return data, nil
}

// DecodeQuotedPrintable removes soft line breaks and replaces =HH escapes
// with the byte they encode. Malformed escapes are kept as-is.
func DecodeQuotedPrintable(content string) []byte {
	content = softLineBreak.ReplaceAllString(content, "")

	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '=' && i+2 < len(content) {
			hi, okHi := fromHex(content[i+1])
			lo, okLo := fromHex(content[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// looksQuotedPrintable detects content that is quoted-printable but not labelled as such.
func looksQuotedPrintable(content string) bool {
	return strings.Contains(content, "=3D") || strings.Contains(content, "=\n") || strings.Contains(content, "=\r\n")
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
