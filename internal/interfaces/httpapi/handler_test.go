package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/infrastructure/repository/memory"
	"github.com/crickstat/xfactor/internal/usecase"
)

func newRankingsRouter(t *testing.T) (http.Handler, *memory.CareerRepository) {
	t.Helper()

	careers := memory.NewCareerRepository(nil, memory.NewPerformanceRepository())
	handler := NewHandler(usecase.NewRankingService(careers, nil), nil, nil)
	return NewRouter(handler, nil, "job-secret"), careers
}

func seedScoredCareer(t *testing.T, careers *memory.CareerRepository, ref int64, format career.Format, score float64) {
	t.Helper()

	c, err := careers.FindOrCreate(context.Background(), ref, format)
	if err != nil {
		t.Fatalf("seed career: %v", err)
	}
	c.Name = "Player"
	c.XFactor = &score
	if err := careers.Update(context.Background(), c); err != nil {
		t.Fatalf("update career: %v", err)
	}
}

func TestHandler_ListRankings(t *testing.T) {
	router, careers := newRankingsRouter(t)

	seedScoredCareer(t, careers, 100, career.FormatTest, 12.5)
	seedScoredCareer(t, careers, 200, career.FormatTest, 40.0)
	seedScoredCareer(t, careers, 300, career.FormatODI, 99.0)

	// Unscored careers never rank.
	if _, err := careers.FindOrCreate(context.Background(), 400, career.FormatTest); err != nil {
		t.Fatalf("seed unscored career: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rankings/test", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []rankingEntryDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(body.Data) != 2 {
		t.Fatalf("want 2 ranked careers, got %d", len(body.Data))
	}
	if body.Data[0].PlayerRef != 200 || body.Data[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", body.Data[0])
	}
	if body.Data[1].PlayerRef != 100 || body.Data[1].XFactor != 12.5 {
		t.Fatalf("unexpected runner-up: %+v", body.Data[1])
	}
}

func TestHandler_ListRankingsRejectsUnknownFormat(t *testing.T) {
	router, _ := newRankingsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rankings/beachcricket", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_ListRankingsRejectsBadLimit(t *testing.T) {
	router, _ := newRankingsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rankings/odi?limit=nope", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestInternalJobRoutes_RequireToken(t *testing.T) {
	router, _ := newRankingsRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-dirty", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected status 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-dirty", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected status 401, got %d", rec.Code)
	}
}
