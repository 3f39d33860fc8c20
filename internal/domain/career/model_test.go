package career

import "testing"

func TestParseFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Format
	}{
		{"test", FormatTest},
		{"Test", FormatTest},
		{" ODI ", FormatODI},
		{"t20i", FormatT20I},
		{"t20", FormatT20I},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q): got %v want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseFormat("beach"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFreshnessZeroValueIsIndeterminate(t *testing.T) {
	t.Parallel()

	var f Freshness
	if f != FreshnessIndeterminate {
		t.Fatalf("zero freshness should be indeterminate, got %v", f)
	}
	if f.String() != "indeterminate" {
		t.Fatalf("unexpected string: %q", f.String())
	}
	if FreshnessDirty.String() != "dirty" || FreshnessClean.String() != "clean" {
		t.Fatal("unexpected freshness labels")
	}
}

func TestFormatValidity(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatTest, FormatODI, FormatT20I} {
		if !f.Valid() {
			t.Fatalf("%v should be valid", f)
		}
	}
	if Format(9).Valid() {
		t.Fatal("format 9 should be invalid")
	}
}
