package player

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"GS Sobers", "gs-sobers"},
		{"  Sir Garfield St Aubrun Sobers ", "sir-garfield-st-aubrun-sobers"},
		{"O'Brien", "o-brien"},
		{"de Villiers", "de-villiers"},
		{"---", ""},
		{"", ""},
		{"A.B. de Villiers", "a-b-de-villiers"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIsStable(t *testing.T) {
	t.Parallel()

	first := Slugify("Sachin Ramesh Tendulkar")
	second := Slugify(" sachin  ramesh   TENDULKAR")
	if first != second {
		t.Fatalf("slug differs across spellings: %q vs %q", first, second)
	}
}

func TestPlayerSetMembership(t *testing.T) {
	t.Parallel()

	p := Player{PlayerRefs: []int64{52337}, CareerIDs: []string{"c-1"}}
	if !p.HasRef(52337) {
		t.Fatal("expected existing ref to be found")
	}
	if p.HasRef(12345) {
		t.Fatal("unexpected ref match")
	}
	if !p.HasCareerID("c-1") {
		t.Fatal("expected existing career id to be found")
	}
	if p.HasCareerID("c-2") {
		t.Fatal("unexpected career id match")
	}
}
