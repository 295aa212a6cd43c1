package survey

import (
	"fmt"
	"sort"
	"strings"

	"higalfetch/internal/services"
)

// Band identifies one of the five Hi-GAL imaging channels.
type Band string

const (
	BandBlue Band = "HIGAL_BLUE"
	BandRed  Band = "HIGAL_RED"
	BandPSW  Band = "HIGAL_PSW"
	BandPMW  Band = "HIGAL_PMW"
	BandPLW  Band = "HIGAL_PLW"
)

// Catalog maps bands to the opaque form identifiers the DR1 result page
// uses for its per-band download controls.
type Catalog struct {
	ids map[Band]int
}

// DefaultCatalog returns the fixed DR1 band table.
func DefaultCatalog() Catalog {
	return Catalog{ids: map[Band]int{
		BandBlue: 4047,
		BandRed:  4051,
		BandPSW:  4050,
		BandPMW:  4049,
		BandPLW:  4048,
	}}
}

// Bands returns the catalog's bands in stable order.
func (c Catalog) Bands() []Band {
	bands := make([]Band, 0, len(c.ids))
	for band := range c.ids {
		bands = append(bands, band)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i] < bands[j] })
	return bands
}

// FormID resolves the form identifier for a band.
func (c Catalog) FormID(band Band) (int, error) {
	id, ok := c.ids[band]
	if !ok {
		return 0, services.Wrap(services.ErrValidation, "survey", "resolve band", fmt.Sprintf("unknown band %q", band), nil)
	}
	return id, nil
}

// Has reports whether the catalog knows the band.
func (c Catalog) Has(band Band) bool {
	_, ok := c.ids[band]
	return ok
}

// ParseBand accepts a band name with or without the HIGAL_ prefix,
// case-insensitively.
func ParseBand(s string) (Band, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return "", services.Wrap(services.ErrValidation, "survey", "parse band", "empty band name", nil)
	}
	if !strings.HasPrefix(name, "HIGAL_") {
		name = "HIGAL_" + name
	}
	band := Band(name)
	if !DefaultCatalog().Has(band) {
		return "", services.Wrap(services.ErrValidation, "survey", "parse band", fmt.Sprintf("unknown band %q", s), nil)
	}
	return band, nil
}

// ParseBands converts a list of names, rejecting duplicates.
func ParseBands(names []string) ([]Band, error) {
	seen := make(map[Band]struct{}, len(names))
	bands := make([]Band, 0, len(names))
	for _, name := range names {
		band, err := ParseBand(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[band]; dup {
			return nil, services.Wrap(services.ErrValidation, "survey", "parse bands", fmt.Sprintf("band %q listed twice", name), nil)
		}
		seen[band] = struct{}{}
		bands = append(bands, band)
	}
	return bands, nil
}

// Short returns the band name without the survey prefix, for display.
func (b Band) Short() string {
	return strings.TrimPrefix(string(b), "HIGAL_")
}
