package survey

import (
	"fmt"
	"strconv"
	"strings"

	"higalfetch/internal/services"
)

// Frame enumerates the coordinate frames the DR1 form understands.
type Frame string

const (
	FrameFK5      Frame = "fk5"
	FrameGalactic Frame = "galactic"
)

// ParseFrame validates a frame name. Unsupported frames are rejected
// rather than silently defaulted.
func ParseFrame(s string) (Frame, error) {
	switch Frame(strings.ToLower(strings.TrimSpace(s))) {
	case FrameFK5:
		return FrameFK5, nil
	case FrameGalactic:
		return FrameGalactic, nil
	default:
		return "", services.Wrap(services.ErrValidation, "survey", "parse frame", fmt.Sprintf("unsupported frame %q (use fk5 or galactic)", s), nil)
	}
}

// Coordinates is a search center: two angles in degrees interpreted in
// the given frame (RA/Dec for fk5, l/b for galactic).
type Coordinates struct {
	Frame Frame
	Lon   float64
	Lat   float64
}

// NewCoordinates validates the frame and angle ranges.
func NewCoordinates(frame Frame, lon, lat float64) (Coordinates, error) {
	if _, err := ParseFrame(string(frame)); err != nil {
		return Coordinates{}, err
	}
	if lon < 0 || lon >= 360 {
		return Coordinates{}, services.Wrap(services.ErrValidation, "survey", "coordinates", fmt.Sprintf("longitude %g out of range [0, 360)", lon), nil)
	}
	if lat < -90 || lat > 90 {
		return Coordinates{}, services.Wrap(services.ErrValidation, "survey", "coordinates", fmt.Sprintf("latitude %g out of range [-90, 90]", lat), nil)
	}
	return Coordinates{Frame: frame, Lon: lon, Lat: lat}, nil
}

// String renders the pair the way the form's free-text input expects:
// two decimal degree values separated by a space.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + " " + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// SearchRequest describes one search: a center, a radius, and the bands
// to download. Construct with NewSearchRequest; the value is treated as
// immutable afterwards.
type SearchRequest struct {
	Target string
	Center Coordinates
	Radius Angle
	Bands  []Band
}

// NewSearchRequest validates the center, radius, and band set. An empty
// band list means all catalog bands.
func NewSearchRequest(target string, center Coordinates, radius Angle, bands []Band) (SearchRequest, error) {
	if _, err := ParseFrame(string(center.Frame)); err != nil {
		return SearchRequest{}, err
	}
	if radius.Arcmin() <= 0 {
		return SearchRequest{}, services.Wrap(services.ErrValidation, "survey", "search request", "radius must be positive", nil)
	}
	catalog := DefaultCatalog()
	if len(bands) == 0 {
		bands = catalog.Bands()
	}
	for _, band := range bands {
		if !catalog.Has(band) {
			return SearchRequest{}, services.Wrap(services.ErrValidation, "survey", "search request", fmt.Sprintf("unknown band %q", band), nil)
		}
	}
	req := SearchRequest{
		Target: CanonicalTarget(target),
		Center: center,
		Radius: radius,
		Bands:  append([]Band(nil), bands...),
	}
	return req, nil
}
