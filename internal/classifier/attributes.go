package classifier

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

const number = `(\d+(?:\.\d+)?)`

var (
	ohmValue      = regexp.MustCompile(number + `\s*([kKmMgG])?\s*(?:Ω|(?i:ohms?)\b)`)
	rkmValue      = regexp.MustCompile(`\b(\d+)([kKMR])(\d+)\b`)
	bareResistor  = regexp.MustCompile(`\b` + number + `\s*([kKMG])\b`)
	tolerance     = regexp.MustCompile(`±\s*` + number + `\s*%`)
	bareTolerance = regexp.MustCompile(number + `\s*%`)

	faradValue  = regexp.MustCompile(`(?i)` + number + `\s*(p|n|u|µ|μ|m)f\b`)
	voltValue   = regexp.MustCompile(`(?i)` + number + `\s*v(?:dc|ac)?\b`)
	voltRange   = regexp.MustCompile(`(?i)` + number + `\s*v?\s*(?:-|~|to)\s*` + number + `\s*v(?:dc|ac)?\b`)
	ampValue    = regexp.MustCompile(`(?i)` + number + `\s*(m|µ|μ|u|n)?a\b`)
	hertzValue  = regexp.MustCompile(`(?i)` + number + `\s*(k|m|g)?hz\b`)
	pinCount    = regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*pins?\b`)
	partNumber  = regexp.MustCompile(`\b([A-Za-z]{2,6}\d{2,6}[A-Za-z0-9]*)\b`)
	chipPackage = regexp.MustCompile(`\b(0402|0603|0805|1206)\b`)
	icPackage   = regexp.MustCompile(`(?i)\b(TSSOP|SOIC|SOP|QFN|QFP|BGA|DIP|SOT)(?:-?(\d+(?:-\d+)?))?\b`)
)

// maxBareTolerance keeps phrases like "100% new" from reading as a tolerance.
const maxBareTolerance = 20

// protocol matches a bus or radio name in a title.
type protocol struct {
	name    string
	pattern *regexp.Regexp
}

// protocols are reported in this order. CAN is matched case-sensitively
// so that the English word "can" is ignored.
var protocols = []protocol{
	{"SPI", regexp.MustCompile(`(?i)\bspi\b`)},
	{"I2C", regexp.MustCompile(`(?i)\bi2c\b|\biic\b`)},
	{"UART", regexp.MustCompile(`(?i)\buart\b`)},
	{"USB", regexp.MustCompile(`(?i)\busb\b`)},
	{"CAN", regexp.MustCompile(`\bCAN(?:-?BUS)?\b`)},
	{"ETHERNET", regexp.MustCompile(`(?i)\bethernet\b`)},
	{"WIFI", regexp.MustCompile(`(?i)\bwi-?fi\b`)},
	{"BLUETOOTH", regexp.MustCompile(`(?i)\bbluetooth\b|\bble\b`)},
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// roundTo removes float noise such as 4700.000000000001.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func ohmMultiplier(prefix string) float64 {
	switch prefix {
	case "k", "K":
		return 1e3
	case "M":
		return 1e6
	case "m":
		return 1e-3
	case "g", "G":
		return 1e9
	case "R", "":
		return 1
	default:
		return 1
	}
}

func extractResistance(title string, isResistor bool) *domain.Resistance {
	var value float64
	found := false

	if m := ohmValue.FindStringSubmatch(title); m != nil {
		value, found = parseNumber(m[1])*ohmMultiplier(m[2]), true
	} else if isResistor {
		if m := rkmValue.FindStringSubmatch(title); m != nil {
			whole := parseNumber(m[1] + "." + m[3])
			value, found = whole*ohmMultiplier(m[2]), true
		} else if m := bareResistor.FindStringSubmatch(title); m != nil {
			value, found = parseNumber(m[1])*ohmMultiplier(m[2]), true
		}
	}
	if !found {
		return nil
	}

	r := &domain.Resistance{Value: roundTo(value, 6), Unit: "Ω"}
	if m := tolerance.FindStringSubmatch(title); m != nil {
		r.Tolerance = m[1] + "%"
	} else if m := bareTolerance.FindStringSubmatch(title); m != nil && parseNumber(m[1]) <= maxBareTolerance {
		r.Tolerance = m[1] + "%"
	}
	return r
}

func faradMultiplier(prefix string) float64 {
	switch strings.ToLower(prefix) {
	case "p":
		return 1
	case "n":
		return 1e3
	case "u", "µ", "μ":
		return 1e6
	case "m":
		return 1e9
	default:
		return 1
	}
}

func extractCapacitance(title string) *domain.Capacitance {
	m := faradValue.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	c := &domain.Capacitance{
		Value: roundTo(parseNumber(m[1])*faradMultiplier(m[2]), 3),
		Unit:  "pF",
	}
	if v := voltValue.FindStringSubmatch(title); v != nil {
		volts := parseNumber(v[1])
		c.Voltage = &volts
	}
	return c
}

func extractVoltage(title string) *domain.VoltageRating {
	if m := voltRange.FindStringSubmatch(title); m != nil {
		lo, hi := parseNumber(m[1]), parseNumber(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return &domain.VoltageRating{Min: &lo, Max: &hi, Unit: "V"}
	}
	if m := voltValue.FindStringSubmatch(title); m != nil {
		v := parseNumber(m[1])
		return &domain.VoltageRating{Nominal: &v, Unit: "V"}
	}
	return nil
}

func extractCurrent(title string) *domain.CurrentRating {
	m := ampValue.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	unit := "A"
	switch strings.ToLower(m[2]) {
	case "m":
		unit = "mA"
	case "µ", "μ", "u":
		unit = "µA"
	case "n":
		unit = "nA"
	}
	return &domain.CurrentRating{Value: parseNumber(m[1]), Unit: unit}
}

func extractFrequency(title string) *domain.Frequency {
	m := hertzValue.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	unit := "Hz"
	switch strings.ToLower(m[2]) {
	case "k":
		unit = "kHz"
	case "m":
		unit = "MHz"
	case "g":
		unit = "GHz"
	}
	return &domain.Frequency{Value: parseNumber(m[1]), Unit: unit}
}

func extractPinCount(title string) *int {
	m := pinCount.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func extractPartNumber(title string) string {
	if m := partNumber.FindStringSubmatch(title); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func extractPackage(title string) string {
	if m := chipPackage.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	m := icPackage.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	pkg := strings.ToUpper(m[1])
	if m[2] != "" {
		pkg += "-" + m[2]
	}
	return pkg
}

func extractProtocols(title string) []string {
	found := []string{}
	for _, p := range protocols {
		if p.pattern.MatchString(title) {
			found = append(found, p.name)
		}
	}
	return found
}

// manufacturerKeys are specification labels that name the maker.
var manufacturerKeys = []string{"brand name", "brand", "manufacturer"}

func extractManufacturer(specs map[string]string) string {
	for _, key := range manufacturerKeys {
		for label, value := range specs {
			if strings.EqualFold(strings.TrimSpace(label), key) {
				if v := strings.TrimSpace(value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
