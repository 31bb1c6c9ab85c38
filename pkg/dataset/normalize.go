package dataset

import (
	"regexp"
	"strings"
	"unicode"
)

// StationCorrections maps segment endpoint names, after title-casing and
// suffix removal, to the spelling used in the coordinate file.
var StationCorrections = map[string]string{
	"Harrow-On-The-Hill":     "Harrow-on-the-Hill",
	"Bromley By Bow":         "Bromley-by-Bow",
	"Heathrow 123":           "Heathrow Terminals 1 2 3",
	"Heathrow Terminal Four": "Heathrow Terminal 4",
	"Walthamstow":            "Walthamstow Central",
	"Highbury":               "Highbury & Islington",
	"Shoreditch":             "Shoreditch High Street",
}

var (
	parenSuffix = regexp.MustCompile(`\s*\(.*?\)\s*`)
	wordAnd     = regexp.MustCompile(`\band\b`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)
)

// Normalize rewrites station names in both tables so that segment endpoints
// join against coordinate records. Lines are trimmed. ds is modified in place
// and returned.
//
// Segment endpoints are title-cased, lose any parenthesised part and are passed
// through StationCorrections. Coordinate names lose "St." periods, apostrophes
// and parenthesised parts; "Jamess" becomes "James" and the word "and" becomes
// "&".
func Normalize(ds *Dataset) *Dataset {
	for i := range ds.Segments {
		s := &ds.Segments[i]
		s.From = normalizeEndpoint(s.From)
		s.To = normalizeEndpoint(s.To)
		s.Line = strings.TrimSpace(s.Line)
	}
	for i := range ds.Stations {
		ds.Stations[i].Name = normalizeRecordName(ds.Stations[i].Name)
	}
	return ds
}

func normalizeEndpoint(name string) string {
	name = TitleCase(name)
	name = stripParens(name)
	if fixed, ok := StationCorrections[name]; ok {
		name = fixed
	}
	return strings.TrimSpace(name)
}

func normalizeRecordName(name string) string {
	name = strings.ReplaceAll(name, "St.", "St")
	name = strings.ReplaceAll(name, "'", "")
	name = stripParens(name)
	name = strings.ReplaceAll(name, "Jamess", "James")
	name = wordAnd.ReplaceAllString(name, "&")
	return strings.TrimSpace(name)
}

// stripParens removes parenthesised parts. A part in the middle of a name
// leaves one space behind so the surrounding words stay separated.
func stripParens(name string) string {
	name = parenSuffix.ReplaceAllString(name, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest. Any non-letter, including an apostrophe or a digit,
// starts a new run, so "king's cross" becomes "King'S Cross".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToTitle(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
