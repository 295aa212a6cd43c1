package survey

import (
	"fmt"
	"strconv"
	"strings"

	"higalfetch/internal/services"
)

// Angle is an angular quantity stored in arcminutes.
type Angle float64

// Arcmin returns the angle in arcminutes.
func (a Angle) Arcmin() float64 { return float64(a) }

// String renders the value the radius form field expects: a bare
// arcminute number.
func (a Angle) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// Arcmin constructs an angle from arcminutes.
func Arcmin(v float64) Angle { return Angle(v) }

// Degrees constructs an angle from degrees.
func Degrees(v float64) Angle { return Angle(v * 60) }

// ParseAngle reads an angular quantity with an optional unit suffix
// (deg, arcmin, arcsec). A bare number is interpreted as arcminutes;
// assumed reports that fallback so the caller can record a warning.
func ParseAngle(s string) (angle Angle, assumed bool, err error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return 0, false, services.Wrap(services.ErrValidation, "survey", "parse angle", "empty value", nil)
	}

	unit := ""
	for _, suffix := range []string{"arcmin", "arcsec", "deg", "'", "\""} {
		if strings.HasSuffix(text, suffix) {
			unit = suffix
			text = strings.TrimSpace(strings.TrimSuffix(text, suffix))
			break
		}
	}

	value, parseErr := strconv.ParseFloat(text, 64)
	if parseErr != nil {
		return 0, false, services.Wrap(services.ErrValidation, "survey", "parse angle", fmt.Sprintf("cannot parse %q", s), parseErr)
	}

	switch unit {
	case "deg":
		return Degrees(value), false, nil
	case "arcsec", "\"":
		return Angle(value / 60), false, nil
	case "arcmin", "'":
		return Angle(value), false, nil
	default:
		return Angle(value), true, nil
	}
}
