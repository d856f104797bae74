// Package validator holds the pure input checks applied to every like
// request before any policy or quota lookup. All functions are total:
// bad input yields false or a pass-through value, never an error.
package validator

import "strings"

// regionAliases maps every accepted alias to its canonical upstream
// region code.
var regionAliases = map[string]string{
	"ind":         "ind",
	"india":       "ind",
	"br":          "nx",
	"brazil":      "nx",
	"us":          "nx",
	"usa":         "nx",
	"sac":         "nx",
	"na":          "nx",
	"nx":          "nx",
	"me":          "ag",
	"middle_east": "ag",
	"ag":          "ag",
}

var regionDisplay = map[string]string{
	"ind":         "INDIA",
	"india":       "INDIA",
	"br":          "BRAZIL",
	"brazil":      "BRAZIL",
	"us":          "USA",
	"usa":         "USA",
	"sac":         "SAC",
	"na":          "NORTH AMERICA",
	"nx":          "NORTH AMERICA",
	"me":          "MIDDLE EAST",
	"middle_east": "MIDDLE EAST",
	"ag":          "MIDDLE EAST",
}

// CleanUID returns the digit-only projection of raw.
func CleanUID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidUID reports whether raw contains a plausible account id: at least
// six digits once every non-digit character is stripped.
func ValidUID(raw string) bool {
	if raw == "" {
		return false
	}
	return len(CleanUID(raw)) >= 6
}

// ValidRegion reports whether raw is a supported region alias,
// case-insensitively.
func ValidRegion(raw string) bool {
	if raw == "" {
		return false
	}
	_, ok := regionAliases[strings.ToLower(raw)]
	return ok
}

// CanonicalRegion maps an alias to one of the three upstream region codes
// (ind, nx, ag). Unknown input is passed through unchanged; callers are
// expected to have run ValidRegion first.
func CanonicalRegion(raw string) string {
	if code, ok := regionAliases[strings.ToLower(raw)]; ok {
		return code
	}
	return raw
}

// RegionDisplayName returns the human-readable label for an alias.
// Unknown input comes back upper-cased.
func RegionDisplayName(raw string) string {
	if name, ok := regionDisplay[strings.ToLower(raw)]; ok {
		return name
	}
	return strings.ToUpper(raw)
}

// DisambiguateArgs resolves the positional ambiguity between the region
// and uid slots: when the uid slot is empty but the region slot holds a
// digit-only token, that token is really the uid. The swap is applied
// as-is, with the region slot cleared.
func DisambiguateArgs(region, uid string) (string, string) {
	if uid == "" && region != "" && allDigits(region) {
		return "", region
	}
	return region, uid
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
