package domain

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rewriteRule replaces the whole match of pattern with replacement.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// locationRules are applied in order to the lowercased place string. Within
// one group only the first matching rule fires.
var locationRules = [][]rewriteRule{
	// "37 km W of Nurdağı, Turkey" -> "turkey"
	{{regexp.MustCompile(`^.*, `), ""}},
	// "south of the fiji islands" -> "fiji islands", "off the coast of oregon" -> "oregon"
	{
		{regexp.MustCompile(`^.* of the `), ""},
		{regexp.MustCompile(`^.* of `), ""},
	},
	{{regexp.MustCompile(`( region)+$`), ""}},
	{{regexp.MustCompile(` earthquake.*$`), ""}},
	{
		{regexp.MustCompile(`^.*atlantic.*$`), "atlantic ocean"},
		{regexp.MustCompile(`^.*pacific.*$`), "pacific ocean"},
		{regexp.MustCompile(`^.*ridge.*$`), "ocean"},
	},
	{
		{regexp.MustCompile(`^mx$`), "mexico"},
		{regexp.MustCompile(`^fiji islands$`), "fiji"},
		{regexp.MustCompile(`^philippine islands$`), "philippines"},
	},
}

// maxRewritePasses bounds the fixed-point iteration in cleanPlace. Every
// rule shortens or canonicalizes the string, so two passes settle real data.
const maxRewritePasses = 8

// usStates maps lowercase USPS codes to lowercase state names.
var usStates = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming",
}

// ringOfFire is the allow-list of normalized locations treated as lying on
// the Pacific Ring of Fire.
var ringOfFire = map[string]struct{}{
	"Philippines": {}, "Japan": {}, "Taiwan": {}, "Vanuatu": {}, "Indonesia": {},
	"Papua New Guinea": {}, "Solomon Islands": {}, "Fiji": {}, "Tonga": {}, "Samoa": {},
	"New Zealand": {}, "Kermadec Islands": {}, "New Caledonia": {}, "Chile": {}, "Peru": {},
	"Ecuador": {}, "Colombia": {}, "Mexico": {}, "Guatemala": {}, "El Salvador": {},
	"Nicaragua": {}, "Costa Rica": {}, "Panama": {}, "California": {}, "Oregon": {},
	"Washington": {}, "Russia": {}, "Kuril Islands": {}, "Mariana Islands": {}, "Guam": {},
	"Alaska": {},
}

// USStateName returns the titlecased state name for a two-letter USPS code,
// ignoring case.
func USStateName(code string) (string, bool) {
	name, ok := usStates[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return "", false
	}
	return titlecase(name), true
}

// USStateCodes returns the uppercase USPS codes known to the normalizer.
func USStateCodes() []string {
	codes := make([]string, 0, len(usStates))
	for code := range usStates {
		codes = append(codes, strings.ToUpper(code))
	}
	return codes
}

// RingOfFireLocations returns the allow-list used by InRingOfFire.
func RingOfFireLocations() []string {
	names := make([]string, 0, len(ringOfFire))
	for name := range ringOfFire {
		names = append(names, name)
	}
	return names
}

// NormalizeLocation reduces a catalog place string to a titlecased region
// name. It returns "" when nothing is left after cleaning. The result is
// stable: NormalizeLocation(NormalizeLocation(s)) == NormalizeLocation(s).
func NormalizeLocation(place string) string {
	s := cleanPlace(strings.ToLower(strings.TrimSpace(place)))
	if len(s) == 2 {
		if name, ok := usStates[s]; ok {
			s = name
		}
	}
	if s == "" {
		return ""
	}
	return titlecase(s)
}

// cleanPlace applies locationRules until the string stops changing.
func cleanPlace(s string) string {
	for range maxRewritePasses {
		next := applyRules(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func applyRules(s string) string {
	for _, group := range locationRules {
		for _, rule := range group {
			if rule.pattern.MatchString(s) {
				s = strings.TrimSpace(rule.pattern.ReplaceAllLiteralString(s, rule.replacement))
				break
			}
		}
	}
	return s
}

// titlecase builds a fresh Caser per call; Casers keep state and must not be
// shared between goroutines.
func titlecase(s string) string {
	return cases.Title(language.English).String(s)
}

// InRingOfFire reports whether a normalized location is on the allow-list.
func InRingOfFire(location string) bool {
	_, ok := ringOfFire[location]
	return ok
}
