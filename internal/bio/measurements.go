package bio

import (
	"math"
	"strconv"
	"strings"
)

// Unit is the marker found in a single measurement fragment.
type Unit string

const (
	UnitCentimetres Unit = "cm"
	UnitKilograms   Unit = "kg"
)

// MeasurementKind tags the shape of a parsed Measurements value.
type MeasurementKind int

const (
	// MeasureEmpty means nothing usable was found.
	MeasureEmpty MeasurementKind = iota
	// MeasureOne is a single fragment identified by its unit marker.
	MeasureOne
	// MeasureTwo is a "height / weight" pair, assigned by position.
	MeasureTwo
)

func (k MeasurementKind) String() string {
	switch k {
	case MeasureOne:
		return "one"
	case MeasureTwo:
		return "two"
	default:
		return "empty"
	}
}

// Measurement is the parsed form of a "Measurements" value. Unit and Amount
// are set for MeasureOne; Height and Weight for MeasureTwo. Any amount may be
// nil when its fragment was not numeric.
type Measurement struct {
	Kind   MeasurementKind
	Unit   Unit
	Amount *float64
	Height *float64
	Weight *float64
}

// ParseMeasurements parses values such as "178 cm / 75 kg", "178 cm" or
// "75 kg".
//
// Two fragments are assigned by position (first height, second weight) with
// no unit check, so "75 kg / 178 cm" yields height 75 and weight 178. A
// single fragment is classified by its "cm" or "kg" marker and is Empty when
// it carries neither.
func ParseMeasurements(s string) Measurement {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 2 {
		return Measurement{
			Kind:   MeasureTwo,
			Height: parseAmount(parts[0]),
			Weight: parseAmount(parts[1]),
		}
	}

	frag := parts[0]
	switch {
	case strings.Contains(frag, string(UnitCentimetres)):
		return Measurement{Kind: MeasureOne, Unit: UnitCentimetres, Amount: parseAmount(frag)}
	case strings.Contains(frag, string(UnitKilograms)):
		return Measurement{Kind: MeasureOne, Unit: UnitKilograms, Amount: parseAmount(frag)}
	}
	return Measurement{Kind: MeasureEmpty}
}

// Resolve folds the measurement into height (cm) and weight (kg).
func (m Measurement) Resolve() (height, weight *float64) {
	switch m.Kind {
	case MeasureTwo:
		return m.Height, m.Weight
	case MeasureOne:
		if m.Unit == UnitCentimetres {
			return m.Amount, nil
		}
		return nil, m.Amount
	}
	return nil, nil
}

// parseAmount strips unit suffixes and converts the residue to a number. Non
// numeric or non-finite residue yields nil.
func parseAmount(frag string) *float64 {
	s := strings.ReplaceAll(frag, string(UnitCentimetres), "")
	s = strings.ReplaceAll(s, string(UnitKilograms), "")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
