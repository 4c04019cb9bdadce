package builtin

import (
	"athletes/internal/bio"
	"athletes/internal/records"
)

// The split transformers fold one compound column into typed columns and
// delete the source. A null or non-string source yields null targets.

// SplitBorn splits "12 January 1980 in Paris, France" into a birth date
// (time.Time, or nil when unparseable) and the raw location text.
type SplitBorn struct {
	Source        string
	DateField     string
	LocationField string
}

func (s SplitBorn) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		raw, ok := r.String(s.Source)
		delete(r, s.Source)
		r[s.DateField], r[s.LocationField] = nil, nil
		if !ok {
			continue
		}
		date, loc := bio.SplitBorn(raw)
		if date != nil {
			if t, ok := bio.ParseBirthDate(*date); ok {
				r[s.DateField] = t
			}
		}
		records.SetOptional(r, s.LocationField, loc)
	}
	return in, nil
}

// SplitLocation splits a birth location at its first comma into a city and
// the combined region/country remainder.
type SplitLocation struct {
	Source    string
	CityField string
	RestField string
}

func (s SplitLocation) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		raw, ok := r.String(s.Source)
		delete(r, s.Source)
		r[s.CityField], r[s.RestField] = nil, nil
		if !ok {
			continue
		}
		city, rest := bio.SplitLocation(raw)
		records.SetOptional(r, s.CityField, city)
		records.SetOptional(r, s.RestField, rest)
	}
	return in, nil
}

// SplitRegion splits "France (Île-de-France)" into region and country.
type SplitRegion struct {
	Source       string
	RegionField  string
	CountryField string
}

func (s SplitRegion) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		raw, ok := r.String(s.Source)
		delete(r, s.Source)
		r[s.RegionField], r[s.CountryField] = nil, nil
		if !ok {
			continue
		}
		region, country := bio.SplitRegionCountry(raw)
		records.SetOptional(r, s.RegionField, region)
		records.SetOptional(r, s.CountryField, country)
	}
	return in, nil
}

// SplitMeasurements turns "178 cm / 75 kg" into float64 height and weight
// columns. See bio.ParseMeasurements for the positional caveat.
type SplitMeasurements struct {
	Source      string
	HeightField string
	WeightField string
}

func (s SplitMeasurements) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		raw, ok := r.String(s.Source)
		delete(r, s.Source)
		r[s.HeightField], r[s.WeightField] = nil, nil
		if !ok {
			continue
		}
		h, w := bio.ParseMeasurements(raw).Resolve()
		records.SetOptional(r, s.HeightField, h)
		records.SetOptional(r, s.WeightField, w)
	}
	return in, nil
}
