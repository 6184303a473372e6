package outlier

import "strconv"

// Contamination is the expected share of outliers handed to a Detector.
//
// Auto lets the detector choose its own threshold. Fraction fixes the share.
type Contamination struct {
	fraction float64
	fixed    bool
}

// Auto delegates the decision threshold to the detector.
var Auto = Contamination{}

// Fraction returns a fixed contamination share. Valid shares lie in (0, 0.5].
func Fraction(f float64) Contamination {
	return Contamination{fraction: f, fixed: true}
}

// IsAuto reports whether the detector picks its own threshold.
func (c Contamination) IsAuto() bool { return !c.fixed }

// Value returns the fixed share, or 0 for Auto.
func (c Contamination) Value() float64 { return c.fraction }

// Validate checks that a fixed share lies in (0, 0.5].
func (c Contamination) Validate() error {
	if c.fixed && (c.fraction <= 0 || c.fraction > 0.5) {
		return ErrInvalidContamination
	}
	return nil
}

func (c Contamination) String() string {
	if !c.fixed {
		return "auto"
	}
	return strconv.FormatFloat(c.fraction, 'g', -1, 64)
}

// ParseContamination parses "auto" or a decimal share.
func ParseContamination(s string) (Contamination, error) {
	if s == "" || s == "auto" {
		return Auto, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Contamination{}, err
	}
	c := Fraction(f)
	return c, c.Validate()
}
