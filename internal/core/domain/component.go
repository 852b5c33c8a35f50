package domain

// VoltageRating is a nominal voltage or a min-max range.
type VoltageRating struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Nominal *float64 `json:"nominal,omitempty"`
	Unit    string   `json:"unit"`
}

// CurrentRating is a current with its SI-prefixed unit (A, mA, µA, nA).
type CurrentRating struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Resistance is expressed in ohms after multiplier expansion.
type Resistance struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Tolerance string  `json:"tolerance,omitempty"`
}

// Capacitance is normalised to picofarads.
type Capacitance struct {
	Value   float64  `json:"value"`
	Unit    string   `json:"unit"`
	Voltage *float64 `json:"voltage,omitempty"`
}

// Frequency is a frequency with its unit (Hz, kHz, MHz, GHz).
type Frequency struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ParsedComponent is the structured description inferred from a product title.
// It is produced once per item and not modified afterwards.
type ParsedComponent struct {
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Subcategory  string         `json:"subcategory,omitempty"`
	PartNumber   string         `json:"partNumber,omitempty"`
	Manufacturer string         `json:"manufacturer,omitempty"`
	Description  string         `json:"description,omitempty"`
	Tags         []string       `json:"tags"`
	PackageType  string         `json:"packageType,omitempty"`
	Voltage      *VoltageRating `json:"voltage,omitempty"`
	Current      *CurrentRating `json:"current,omitempty"`
	Resistance   *Resistance    `json:"resistance,omitempty"`
	Capacitance  *Capacitance   `json:"capacitance,omitempty"`
	Frequency    *Frequency     `json:"frequency,omitempty"`
	PinCount     *int           `json:"pinCount,omitempty"`
	Protocols    []string       `json:"protocols"`
}
