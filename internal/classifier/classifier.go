package classifier

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.ComponentClassifier = (*Classifier)(nil)

// maxNameLength caps component names, in runes.
const maxNameLength = 100

// Classifier maps product titles to component descriptions.
// It is stateless apart from the source name and safe for concurrent use.
type Classifier struct {
	source string
}

// New creates a Classifier that attributes components to source.
func New(source string) *Classifier {
	if source == "" {
		source = domain.DefaultSourceName
	}
	return &Classifier{source: source}
}

// Classify builds a best-effort component description from a title and
// optional specifications. It never fails.
func (c *Classifier) Classify(title string, specs map[string]string) domain.ParsedComponent {
	title = strings.Join(strings.Fields(title), " ")
	lower := strings.ToLower(title)

	cat, sub := categorise(lower)

	component := domain.ParsedComponent{
		Name:         truncate(title, maxNameLength),
		Category:     cat,
		Subcategory:  sub,
		PartNumber:   extractPartNumber(title),
		Manufacturer: extractManufacturer(specs),
		PackageType:  extractPackage(title),
		Voltage:      extractVoltage(title),
		Current:      extractCurrent(title),
		Resistance:   extractResistance(title, sub == "Resistors"),
		Capacitance:  extractCapacitance(title),
		Frequency:    extractFrequency(title),
		PinCount:     extractPinCount(title),
		Protocols:    extractProtocols(title),
	}
	component.Description = c.describe(title, &component)
	component.Tags = c.tags(&component)
	return component
}

func (c *Classifier) describe(title string, p *domain.ParsedComponent) string {
	var b strings.Builder
	b.WriteString("Imported from ")
	b.WriteString(c.source)
	b.WriteString(": ")
	b.WriteString(title)
	if p.Resistance != nil {
		b.WriteString(". Resistance: ")
		b.WriteString(formatSI(p.Resistance.Value, "Ω"))
		if p.Resistance.Tolerance != "" {
			b.WriteString(" ±")
			b.WriteString(p.Resistance.Tolerance)
		}
	}
	if p.Capacitance != nil {
		b.WriteString(". Capacitance: ")
		b.WriteString(formatSI(p.Capacitance.Value*1e-12, "F"))
		if p.Capacitance.Voltage != nil {
			b.WriteString(" ")
			b.WriteString(strconv.FormatFloat(*p.Capacitance.Voltage, 'f', -1, 64))
			b.WriteString("V")
		}
	}
	if p.PackageType != "" {
		b.WriteString(". Package: ")
		b.WriteString(p.PackageType)
	}
	return b.String()
}

func (c *Classifier) tags(p *domain.ParsedComponent) []string {
	candidates := []string{c.source, "imported", p.Subcategory, p.PackageType}
	candidates = append(candidates, p.Protocols...)

	seen := make(map[string]bool, len(candidates))
	tags := make([]string, 0, len(candidates))
	for _, t := range candidates {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

var siPrefixes = []struct {
	factor float64
	symbol string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// formatSI renders v with the largest SI prefix that keeps it at or above 1.
func formatSI(v float64, unit string) string {
	for _, p := range siPrefixes {
		if v >= p.factor {
			return strconv.FormatFloat(roundTo(v/p.factor, 3), 'f', -1, 64) + p.symbol + unit
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
