package validator

import "testing"

func TestValidUID(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"123456789", true},
		{"123456", true},
		{"12345", false},
		{"abc123", false},       // cleans to "123"
		{"uid:123456", true},    // non-digits stripped
		{" 1 2 3 4 5 6 ", true}, // whitespace stripped
		{"", false},
		{"abcdef", false},
	}

	for _, tc := range cases {
		if got := ValidUID(tc.raw); got != tc.want {
			t.Errorf("ValidUID(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCleanUID(t *testing.T) {
	if got := CleanUID("abc123"); got != "123" {
		t.Errorf("CleanUID(abc123) = %q, want 123", got)
	}
	if got := CleanUID("uid-987654321"); got != "987654321" {
		t.Errorf("CleanUID(uid-987654321) = %q, want 987654321", got)
	}
	if got := CleanUID("no digits"); got != "" {
		t.Errorf("CleanUID(no digits) = %q, want empty", got)
	}
}

func TestValidRegion(t *testing.T) {
	for _, alias := range []string{"ind", "INDIA", "br", "Brazil", "US", "usa", "sac", "NA", "nx", "me", "MIDDLE_EAST", "ag"} {
		if !ValidRegion(alias) {
			t.Errorf("ValidRegion(%q) = false, want true", alias)
		}
	}
	for _, bad := range []string{"", "xx", "europe", "in d"} {
		if ValidRegion(bad) {
			t.Errorf("ValidRegion(%q) = true, want false", bad)
		}
	}
}

func TestCanonicalRegion(t *testing.T) {
	cases := map[string]string{
		"ind":         "ind",
		"INDIA":       "ind",
		"br":          "nx",
		"brazil":      "nx",
		"us":          "nx",
		"USA":         "nx",
		"sac":         "nx",
		"na":          "nx",
		"nx":          "nx",
		"me":          "ag",
		"middle_east": "ag",
		"AG":          "ag",
	}
	for raw, want := range cases {
		if got := CanonicalRegion(raw); got != want {
			t.Errorf("CanonicalRegion(%q) = %q, want %q", raw, got, want)
		}
	}

	// Idempotent on canonical codes, pass-through on garbage.
	if got := CanonicalRegion("nx"); got != "nx" {
		t.Errorf("CanonicalRegion(nx) = %q, want nx", got)
	}
	if got := CanonicalRegion("zz"); got != "zz" {
		t.Errorf("CanonicalRegion(zz) = %q, want pass-through zz", got)
	}
}

func TestRegionDisplayName(t *testing.T) {
	cases := map[string]string{
		"ind": "INDIA",
		"br":  "BRAZIL",
		"usa": "USA",
		"sac": "SAC",
		"na":  "NORTH AMERICA",
		"nx":  "NORTH AMERICA",
		"me":  "MIDDLE EAST",
		"ag":  "MIDDLE EAST",
		"zz":  "ZZ", // unknown input upper-cased
	}
	for raw, want := range cases {
		if got := RegionDisplayName(raw); got != want {
			t.Errorf("RegionDisplayName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDisambiguateArgs(t *testing.T) {
	// UID handed in through the region slot gets reassigned.
	region, uid := DisambiguateArgs("123456789", "")
	if region != "" || uid != "123456789" {
		t.Errorf("swap failed: got region=%q uid=%q", region, uid)
	}

	// Both present: nothing moves.
	region, uid = DisambiguateArgs("ind", "123456789")
	if region != "ind" || uid != "123456789" {
		t.Errorf("unexpected swap: got region=%q uid=%q", region, uid)
	}

	// Region is not digit-only: nothing moves even with an empty uid.
	region, uid = DisambiguateArgs("ind", "")
	if region != "ind" || uid != "" {
		t.Errorf("unexpected swap: got region=%q uid=%q", region, uid)
	}

	// Both empty stays empty.
	region, uid = DisambiguateArgs("", "")
	if region != "" || uid != "" {
		t.Errorf("expected both empty, got region=%q uid=%q", region, uid)
	}
}
