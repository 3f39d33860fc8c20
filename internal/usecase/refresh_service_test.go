package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/domain/match"
	"github.com/crickstat/xfactor/internal/infrastructure/repository/memory"
)

// stubProvider serves canned documents keyed by player reference, counting
// fetches so tests can assert the fan-out. A nil formats set means every
// format has the document; otherwise formats outside the set come back
// empty, like a player who never appeared in that match type.
type stubProvider struct {
	docs    map[int64]SourceDocument
	formats map[career.Format]bool
	err     error
	fetches atomic.Int64
}

func (p *stubProvider) FetchFieldingDocument(_ context.Context, playerRef int64, format career.Format) (SourceDocument, error) {
	p.fetches.Add(1)
	if p.err != nil {
		return SourceDocument{}, p.err
	}
	if p.formats != nil && !p.formats[format] {
		return SourceDocument{}, nil
	}
	return p.docs[playerRef], nil
}

type refreshFixture struct {
	provider     *stubProvider
	matches      *memory.MatchRepository
	performances *memory.PerformanceRepository
	careers      *memory.CareerRepository
	players      *memory.PlayerRepository
	svc          *RefreshService
}

func newRefreshFixture(t *testing.T, provider *stubProvider, seed []match.Match) *refreshFixture {
	t.Helper()

	matches := memory.NewMatchRepository(seed)
	performances := memory.NewPerformanceRepository()
	careers := memory.NewCareerRepository(nil, performances)
	players := memory.NewPlayerRepository()

	identity := NewIdentityService(players, nil)
	ingest := NewIngestService(matches, performances, careers, nil)
	stats := NewStatsService(performances, careers, nil)
	score := NewScoreService(nil)

	return &refreshFixture{
		provider:     provider,
		matches:      matches,
		performances: performances,
		careers:      careers,
		players:      players,
		svc:          NewRefreshService(provider, identity, ingest, stats, score, careers, 2, nil),
	}
}

func (f *refreshFixture) newDirtyCareer(t *testing.T, ref int64, format career.Format) career.Career {
	t.Helper()

	c, err := f.careers.FindOrCreate(context.Background(), ref, format)
	if err != nil {
		t.Fatalf("seed career: %v", err)
	}
	c.Freshness = career.FreshnessDirty
	if err := f.careers.Update(context.Background(), c); err != nil {
		t.Fatalf("mark dirty: %v", err)
	}
	return c
}

func playerDocument(matchRef string) SourceDocument {
	return SourceDocument{
		PageTitle: "Players and Officials /\n West Indies /\n GS Sobers",
		Scripts:   []string{sobersScript},
		Rows: []SourceRow{
			summaryRow(1),
			matchRow(matchRef, 1, 2, 2),
		},
	}
}

func TestRefreshService_RefreshDirty(t *testing.T) {
	t.Parallel()

	seed := []match.Match{{Ref: "63164", DateStart: date(2001, 3, 11), DateEnd: date(2001, 3, 15)}}
	provider := &stubProvider{docs: map[int64]SourceDocument{
		52337: playerDocument("63164"),
		52338: playerDocument("63164"),
	}}
	f := newRefreshFixture(t, provider, seed)

	a := f.newDirtyCareer(t, 52337, career.FormatTest)
	b := f.newDirtyCareer(t, 52338, career.FormatODI)

	result, err := f.svc.RefreshDirty(context.Background())
	if err != nil {
		t.Fatalf("refresh dirty: %v", err)
	}
	if result.Processed != 2 || result.Cleaned != 2 || result.Removed != 0 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := provider.fetches.Load(); got != 2 {
		t.Fatalf("want 2 fetches, got %d", got)
	}

	for _, id := range []string{a.ID, b.ID} {
		stored, err := f.careers.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("reload career %s: %v", id, err)
		}
		if stored.Freshness != career.FreshnessClean {
			t.Fatalf("career %s not marked clean: %v", id, stored.Freshness)
		}
		if stored.MatchCount == nil || *stored.MatchCount != 1 {
			t.Fatalf("career %s missing ingested match count: %+v", id, stored)
		}
		if stored.Totals.Fielding.CatchesTotal != 2 {
			t.Fatalf("career %s totals not recomputed: %+v", id, stored.Totals)
		}
	}

	// Identity linking ran as part of the pipeline.
	if _, err := f.players.GetBySlug(context.Background(), "gs-sobers"); err != nil {
		t.Fatalf("master player not created by refresh: %v", err)
	}
}

func TestRefreshService_NoDirtyCareersIsANoop(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	f := newRefreshFixture(t, provider, nil)

	result, err := f.svc.RefreshDirty(context.Background())
	if err != nil {
		t.Fatalf("refresh dirty: %v", err)
	}
	if result != (RefreshResult{}) {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.fetches.Load() != 0 {
		t.Fatal("nothing should have been fetched")
	}
}

func TestRefreshService_EmptyDocumentRemovesCareer(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{docs: map[int64]SourceDocument{}}
	f := newRefreshFixture(t, provider, nil)
	c := f.newDirtyCareer(t, 52337, career.FormatTest)

	result, err := f.svc.RefreshDirty(context.Background())
	if err != nil {
		t.Fatalf("refresh dirty: %v", err)
	}
	if result.Processed != 1 || result.Removed != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := f.careers.GetByID(context.Background(), c.ID); !errors.Is(err, career.ErrNotFound) {
		t.Fatalf("empty career should be gone, got %v", err)
	}
}

func TestRefreshService_FailedCareerStaysDirty(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: errors.New("upstream unavailable")}
	f := newRefreshFixture(t, provider, nil)
	c := f.newDirtyCareer(t, 52337, career.FormatODI)

	result, err := f.svc.RefreshDirty(context.Background())
	if err != nil {
		t.Fatalf("batch errors are per-career: %v", err)
	}
	if result.Processed != 1 || result.Failed != 1 || result.Cleaned != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored, err := f.careers.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("reload career: %v", err)
	}
	if stored.Freshness != career.FreshnessDirty {
		t.Fatalf("failed career must stay dirty, got %v", stored.Freshness)
	}
}

func TestRefreshService_RefreshPlayerRefIsForced(t *testing.T) {
	t.Parallel()

	seed := []match.Match{{Ref: "63164", DateStart: date(2001, 3, 11), DateEnd: date(2001, 3, 15)}}
	provider := &stubProvider{
		docs:    map[int64]SourceDocument{52337: playerDocument("63164")},
		formats: map[career.Format]bool{career.FormatTest: true},
	}
	f := newRefreshFixture(t, provider, seed)

	// Already clean: a forced refresh must still recompute it.
	c, err := f.careers.FindOrCreate(context.Background(), 52337, career.FormatTest)
	if err != nil {
		t.Fatalf("seed career: %v", err)
	}
	c.Freshness = career.FreshnessClean
	if err := f.careers.Update(context.Background(), c); err != nil {
		t.Fatalf("mark clean: %v", err)
	}

	result, err := f.svc.RefreshPlayerRef(context.Background(), 52337)
	if err != nil {
		t.Fatalf("refresh player ref: %v", err)
	}
	if result.Processed != 3 || result.Cleaned != 1 || result.Removed != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.fetches.Load() != 3 {
		t.Fatalf("want a fetch per format, got %d", provider.fetches.Load())
	}

	stored, err := f.careers.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("reload career: %v", err)
	}
	if stored.Totals.Fielding.CatchesTotal != 2 {
		t.Fatalf("forced refresh did not recompute totals: %+v", stored.Totals)
	}

	// The formats the source has nothing for must not leave empty careers.
	remaining, err := f.careers.ListByPlayerRef(context.Background(), 52337)
	if err != nil {
		t.Fatalf("list careers: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("want only the test career left, got %d", len(remaining))
	}
}

func TestRefreshService_RefreshPlayerRefCreatesCareers(t *testing.T) {
	t.Parallel()

	seed := []match.Match{{Ref: "63164", DateStart: date(2001, 3, 11), DateEnd: date(2001, 3, 15)}}
	provider := &stubProvider{docs: map[int64]SourceDocument{52337: playerDocument("63164")}}
	f := newRefreshFixture(t, provider, seed)

	// Nothing seeded: the reference has never been seen before.
	result, err := f.svc.RefreshPlayerRef(context.Background(), 52337)
	if err != nil {
		t.Fatalf("refresh player ref: %v", err)
	}
	if result.Processed != 3 || result.Cleaned != 3 || result.Removed != 0 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	list, err := f.careers.ListByPlayerRef(context.Background(), 52337)
	if err != nil {
		t.Fatalf("list careers: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("want a career per format, got %d", len(list))
	}
	for _, c := range list {
		if c.Freshness != career.FreshnessClean {
			t.Fatalf("career %s (%s) not marked clean: %v", c.ID, c.Format, c.Freshness)
		}
		if c.Totals.Fielding.CatchesTotal != 2 {
			t.Fatalf("career %s totals not recomputed: %+v", c.ID, c.Totals)
		}
	}
}

func TestRefreshService_RefreshPlayerRefValidatesInput(t *testing.T) {
	t.Parallel()

	f := newRefreshFixture(t, &stubProvider{}, nil)
	if _, err := f.svc.RefreshPlayerRef(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
