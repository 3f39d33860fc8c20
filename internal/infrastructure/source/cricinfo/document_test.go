package cricinfo

import (
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<script>var settings = {};</script>
<script>var omniPageName = "cricket:engine:player:Sir Garfield Sobers";</script>
</head>
<body>
<h1 class="SubnavSitesection">Players and Officials /
 West Indies /
 GS Sobers</h1>
<table>
<tr class="head"><td>Dct</td><td>Ct</td><td>St</td><td>Ct Wk</td><td>Ct Fi</td></tr>
<tr class="data1"><td>9</td><td>7</td><td>2</td><td>0</td><td>7</td><td>-</td><td>-</td><td>-</td><td>-</td><td>-</td><td></td></tr>
<tr class="data1"><td>1</td><td>1</td><td>0</td><td>0</td><td>1</td><td>1</td><td>-</td><td>-</td><td>-</td><td>v England</td><td><a href="/ci/engine/match/63164.html">Bridgetown</a></td></tr>
<tr class="data1"><td>TDNF</td><td>0</td><td>0</td><td>0</td><td>0</td><td>2</td><td>-</td><td>-</td><td>-</td><td>v England</td><td><a href="/ci/engine/match/63164.html">Bridgetown</a></td></tr>
<tr class="data1"><td>2</td><td>2</td><td>0</td><td>0</td><td>2</td><td>1</td><td>-</td><td>-</td><td>-</td><td>v Australia</td><td><span><a href="/ci/engine/match/63199.html">Georgetown</a></span></td></tr>
</table>
</body>
</html>`

func TestParseFieldingPage(t *testing.T) {
	t.Parallel()

	doc, err := ParseFieldingPage([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.PageTitle == "" {
		t.Fatal("page title missing")
	}
	if len(doc.Scripts) != 2 {
		t.Fatalf("want 2 scripts, got %d", len(doc.Scripts))
	}
	if len(doc.Rows) != 4 {
		t.Fatalf("want 4 data rows, got %d", len(doc.Rows))
	}

	// Summary row: full cell set, no match link.
	summary := doc.Rows[0]
	if summary.MatchLink != "" {
		t.Fatalf("summary row should have no match link, got %q", summary.MatchLink)
	}
	if len(summary.Cells) != 11 || summary.Cells[2] != "2" {
		t.Fatalf("unexpected summary cells: %v", summary.Cells)
	}

	first := doc.Rows[1]
	if first.MatchLink != "/ci/engine/match/63164.html" {
		t.Fatalf("unexpected match link: %q", first.MatchLink)
	}
	if first.Cells[0] != "1" || first.Cells[5] != "1" {
		t.Fatalf("unexpected cells: %v", first.Cells)
	}

	// The did-not-field marker survives extraction; classification is the
	// row parser's job.
	if doc.Rows[2].Cells[0] != "TDNF" {
		t.Fatalf("unexpected marker cell: %q", doc.Rows[2].Cells[0])
	}

	// Nested anchors still resolve.
	if doc.Rows[3].MatchLink != "/ci/engine/match/63199.html" {
		t.Fatalf("unexpected nested match link: %q", doc.Rows[3].MatchLink)
	}
}

func TestParseFieldingPage_EmptyPage(t *testing.T) {
	t.Parallel()

	doc, err := ParseFieldingPage([]byte(`<html><body><p>Page not found</p></body></html>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Rows) != 0 {
		t.Fatalf("want no rows, got %d", len(doc.Rows))
	}
}
