// Package bio parses the compound free-text fields of an athlete biography.
//
// Every function in this package is total: malformed input never produces an
// error or a panic, only a nil (null) fragment. Callers decide what a null
// means for the row.
package bio

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the day-month-year layout birth date fragments are parsed
// against once month names have been replaced by their numeric code.
const DateLayout = "2-01-2006"

// DefaultBirthDate is substituted for missing or unparseable birth dates. It
// is a placeholder, not an estimate.
const DefaultBirthDate = "1975-01-01"

// bornSep matches the first whitespace-delimited "in" token separating the
// date from the place of birth.
var bornSep = regexp.MustCompile(`(?:^|\s)in(?:\s|$)`)

var monthCodes = map[string]string{
	"January":   "01",
	"February":  "02",
	"March":     "03",
	"April":     "04",
	"May":       "05",
	"June":      "06",
	"July":      "07",
	"August":    "08",
	"September": "09",
	"October":   "10",
	"November":  "11",
	"December":  "12",
}

// monthName absorbs the whitespace around a month so "12 January 1980"
// becomes "12-01-1980".
var monthName = regexp.MustCompile(`\s*\b(January|February|March|April|May|June|July|August|September|October|November|December)\b\s*`)

// SplitBorn splits a "Born" value such as "12 January 1980 in Paris, France"
// into its date and location fragments. When the "in" token is absent the
// whole value is the date fragment and location is nil.
func SplitBorn(s string) (date, location *string) {
	loc := bornSep.FindStringIndex(s)
	if loc == nil {
		return nonEmpty(s), nil
	}
	return nonEmpty(s[:loc[0]]), nonEmpty(s[loc[1]:])
}

// ParseBirthDate converts a date fragment to a time. Long-form month names are
// rewritten to "-MM-" before the fragment is matched against DateLayout; any
// residue that does not match exactly yields ok == false.
func ParseBirthDate(fragment string) (time.Time, bool) {
	s := monthName.ReplaceAllStringFunc(fragment, func(m string) string {
		return "-" + monthCodes[strings.TrimSpace(m)] + "-"
	})
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SplitLocation splits a birth location at its first comma into the city and
// the combined region/country remainder. The remainder keeps any trailing
// parenthesized qualifier.
func SplitLocation(s string) (city, regionCountry *string) {
	before, after, found := strings.Cut(s, ",")
	if !found {
		return nonEmpty(s), nil
	}
	return nonEmpty(before), nonEmpty(after)
}

// SplitRegionCountry splits "France (Île-de-France)" at the first opening
// parenthesis. The closing parenthesis is removed from the country.
func SplitRegionCountry(s string) (region, country *string) {
	before, after, found := strings.Cut(s, "(")
	if !found {
		return nonEmpty(s), nil
	}
	return nonEmpty(before), nonEmpty(strings.ReplaceAll(after, ")", ""))
}

// nonEmpty trims s and returns nil when nothing is left.
func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
