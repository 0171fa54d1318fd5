package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
	"github.com/networkout/networkout/internal/matching"
	"github.com/networkout/networkout/internal/pipeline"
	"github.com/networkout/networkout/internal/planning"
)

func testHandler(t *testing.T, token string) http.Handler {
	t.Helper()

	providers, err := catalog.LoadProviders()
	if err != nil {
		t.Fatalf("loading providers: %v", err)
	}
	exercises, err := catalog.LoadExercises()
	if err != nil {
		t.Fatalf("loading exercises: %v", err)
	}

	p := pipeline.New(pipeline.Deps{
		Extractor: intake.NewExtractor(nil),
		Matcher:   matching.NewScorer(providers, matching.DefaultWeights(), nil),
		Planner:   planning.NewSynthesizer(exercises, nil),
	}, pipeline.Config{})

	return NewHandler(Deps{
		Pipeline:  p,
		Providers: providers,
		Token:     token,
	})
}

func TestHealth(t *testing.T) {
	h := testHandler(t, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestProvidersRequiresToken(t *testing.T) {
	h := testHandler(t, "secret")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/providers", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/providers", nil)
	req.Header.Set("Authorization", "Bearer secret")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status with token = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "trainer_001") {
		t.Fatalf("providers listing missing catalog entries: %s", rr.Body.String())
	}
}

func TestProvidersFiltering(t *testing.T) {
	h := testHandler(t, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/providers?budget=low", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "trainer_003") {
		t.Fatalf("low budget listing should include trainer_003: %s", body)
	}
	if strings.Contains(body, "trainer_002") {
		t.Fatalf("low budget listing should exclude premium trainers: %s", body)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/providers?specialty=nonexistent", nil))
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("empty filter result must encode as [], got %s", body)
	}
}

func TestGetProviderByID(t *testing.T) {
	h := testHandler(t, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/providers/trainer_001", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/providers/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status for unknown id = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPipelineRejectsEmptyText(t *testing.T) {
	h := testHandler(t, "")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pipeline", strings.NewReader(`{"text":""}`))
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestPipelineStreamsStageEvents(t *testing.T) {
	h := testHandler(t, "")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pipeline", strings.NewReader(`{"text":"I want to lose weight"}`))
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want %q", ct, "text/event-stream")
	}

	body := rr.Body.String()
	for _, stage := range []string{"intake", "matching", "planning"} {
		if !strings.Contains(body, `"stage":"`+stage+`"`) {
			t.Fatalf("stream missing %s events: %s", stage, body)
		}
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Fatalf("stream missing the DONE terminator")
	}
}
