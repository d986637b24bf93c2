// Package slug builds and parses the human-readable path segments used to
// link to service listings, e.g. "diseno-web-cali-valle-del-cauca-colombia-a1b2c3d4".
//
// A slug is never stored. It is recomputed from the listing's current title
// and location on every render, so it changes when those fields change. Only
// the trailing fragment (the first hyphen-delimited group of the listing ID)
// is used to resolve a slug back to a listing.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultLocation is the location phrase used when a record has no city,
// state, or country.
const DefaultLocation = "Colombia"

// Record is the subset of a listing the codec needs.
// City, State and Country are optional; empty or whitespace-only values are
// treated as absent.
type Record struct {
	ID      string
	Title   string
	City    string
	State   string
	Country string
}

// Whitespace covers Unicode separators (NBSP, em space, ...), vertical tab
// and BOM in addition to the ASCII set matched by \s.
var (
	disallowed  = regexp.MustCompile(`[^a-z0-9\s\p{Z}\v\x{FEFF}-]`)
	whitespace  = regexp.MustCompile(`[\s\p{Z}\v\x{FEFF}]+`)
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
	stripAccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Codec encodes and decodes listing slugs. The zero value uses DefaultLocation.
// A Codec holds no mutable state and is safe for concurrent use.
type Codec struct {
	fallback string
}

// NewCodec returns a Codec that substitutes fallback for records without any
// location fields. An empty fallback selects DefaultLocation.
func NewCodec(fallback string) Codec {
	return Codec{fallback: strings.TrimSpace(fallback)}
}

// Encode builds the slug for r: the normalized "title location" text followed
// by "-" and the short ID fragment.
func (c Codec) Encode(r Record) string {
	desc := Normalize(r.Title + " " + c.location(r))
	return desc + "-" + ShortID(r.ID)
}

// Decode returns the short ID fragment embedded at the end of s.
func (c Codec) Decode(s string) string {
	return Decode(s)
}

func (c Codec) location(r Record) string {
	var parts []string
	for _, p := range []string{r.City, r.State, r.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		if c.fallback != "" {
			return c.fallback
		}
		return DefaultLocation
	}
	return strings.Join(parts, " ")
}

// Encode builds the slug for r using DefaultLocation as the fallback.
func Encode(r Record) string {
	return Codec{}.Encode(r)
}

// Decode returns the last hyphen-delimited segment of s. Input without a
// hyphen is returned unchanged and the empty string decodes to itself.
func Decode(s string) string {
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ShortID returns id up to, but not including, its first hyphen.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}

// Normalize turns free text into a lowercase, hyphen-separated, URL-safe
// string. Accents are stripped ("é" becomes "e"); characters outside
// [a-z0-9] that are not whitespace or hyphens are dropped, and runs of
// whitespace, Unicode spaces included, become a single hyphen.
func Normalize(text string) string {
	s, _, err := transform.String(stripAccent, text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "- \t\n\r")
}
