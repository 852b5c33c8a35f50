package classifier

import "regexp"

// category is one step of the category cascade.
type category struct {
	name        string
	subcategory func(lower string) string
	match       func(lower string) bool
}

const genericCategory = "Electronic Component"

var (
	resistorWords  = regexp.MustCompile(`\bresistors?\b|\bohms?\b|Ω|\bpotentiometer\b|\btrimmer\b`)
	capacitorWords = regexp.MustCompile(`\bcapacitors?\b|\bcaps?\b|\d\s*(?:p|n|u|µ)f\b|\belectrolytic\b|\bceramic\b`)
	mcuWords       = regexp.MustCompile(`\bmcu\b|microcontroller|\bstm32|\batmega|\besp32|\besp8266|\bpic\d|\barduino\b|\brp2040\b`)
	icWords        = regexp.MustCompile(`\bic\b|\bchip\b|\bop-?amp\b|\bregulator\b|\bdriver\b|\beeprom\b|\bmosfet\b|\btransistor\b`)
	connectorWords = regexp.MustCompile(`connector|\bheader\b|\bjst\b|\bsocket\b|\bterminal\b|\bdupont\b|\bplug\b|\bjack\b`)
	sensorWords    = regexp.MustCompile(`sensor|\bdetector\b|\baccelerometer\b|\bgyroscope\b|\bthermistor\b|\bdht\d+|\bbme\d+|\bhc-sr04\b`)
	displayWords   = regexp.MustCompile(`display|\blcd\b|\boled\b|\btft\b|\be-?ink\b|\bsegment\b|\bmatrix\b`)
)

// categories are evaluated in order; the first match wins.
var categories = []category{
	{
		name:        "Passive Components",
		match:       resistorWords.MatchString,
		subcategory: func(string) string { return "Resistors" },
	},
	{
		name:        "Passive Components",
		match:       capacitorWords.MatchString,
		subcategory: func(string) string { return "Capacitors" },
	},
	{
		name: "Integrated Circuits",
		match: func(lower string) bool {
			return mcuWords.MatchString(lower) || icWords.MatchString(lower)
		},
		subcategory: func(lower string) string {
			if mcuWords.MatchString(lower) {
				return "Microcontrollers"
			}
			return "ICs"
		},
	},
	{
		name:        "Connectors",
		match:       connectorWords.MatchString,
		subcategory: func(string) string { return "" },
	},
	{
		name:        "Sensors",
		match:       sensorWords.MatchString,
		subcategory: func(string) string { return "" },
	},
	{
		name:        "Displays",
		match:       displayWords.MatchString,
		subcategory: func(string) string { return "" },
	},
}

// categorise returns the category and subcategory for a lower-cased title.
func categorise(lower string) (string, string) {
	for _, c := range categories {
		if c.match(lower) {
			return c.name, c.subcategory(lower)
		}
	}
	return genericCategory, ""
}
