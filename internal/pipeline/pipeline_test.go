package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
	"github.com/networkout/networkout/internal/matching"
	"github.com/networkout/networkout/internal/planning"
)

type stubExtractor struct{}

func (stubExtractor) Extract(string) *intake.Profile {
	return intake.DefaultProfile()
}

type stubMatcher struct {
	panics bool
}

func (m stubMatcher) Match(*intake.Profile) *matching.Result {
	if m.panics {
		panic("matcher exploded")
	}
	return &matching.Result{
		Recommended: &matching.ScoredCandidate{Provider: &catalog.Provider{ID: "t1", Name: "Ada"}, Score: 90},
	}
}

type stubPlanner struct{}

func (stubPlanner) Synthesize(*intake.Profile, *catalog.Provider) *planning.Result {
	return &planning.Result{Plan: &planning.Plan{}}
}

func newTestPipeline(matcher Matcher) *Pipeline {
	return New(Deps{
		Extractor: stubExtractor{},
		Matcher:   matcher,
		Planner:   stubPlanner{},
	}, Config{})
}

func collect(events <-chan Event) []Event {
	var out []Event
	for e := range events {
		out = append(out, e)
	}
	return out
}

func TestRunEmitsOrderedStageEvents(t *testing.T) {
	p := newTestPipeline(stubMatcher{})

	run, events := p.Run(context.Background(), "hello")
	got := collect(events)

	want := []struct {
		stage  Stage
		status Status
	}{
		{StageIntake, StatusAnalyzing},
		{StageIntake, StatusComplete},
		{StageMatching, StatusAnalyzing},
		{StageMatching, StatusComplete},
		{StagePlanning, StatusAnalyzing},
		{StagePlanning, StatusComplete},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Stage != w.stage || got[i].Status != w.status {
			t.Fatalf("event %d = %s/%s, want %s/%s", i, got[i].Stage, got[i].Status, w.stage, w.status)
		}
		if got[i].RunID != run.ID {
			t.Fatalf("event %d carries run id %q, want %q", i, got[i].RunID, run.ID)
		}
		if w.status == StatusComplete && got[i].Payload == nil {
			t.Fatalf("complete event %d has no payload", i)
		}
	}

	for _, stage := range stages {
		if run.State(stage) != StatusComplete {
			t.Fatalf("stage %s state = %s, want complete", stage, run.State(stage))
		}
	}
}

func TestRunStageFaultHaltsPipeline(t *testing.T) {
	p := newTestPipeline(stubMatcher{panics: true})

	run, events := p.Run(context.Background(), "hello")
	got := collect(events)

	// Intake completes, matching fails, planning never starts.
	if len(got) != 4 {
		t.Fatalf("expected 4 events, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.Stage != StageMatching || last.Status != StatusFailed {
		t.Fatalf("terminal event = %s/%s, want matching/failed", last.Stage, last.Status)
	}
	if last.Error == "" {
		t.Fatalf("failed event must carry an error")
	}

	if run.State(StageIntake) != StatusComplete {
		t.Fatalf("intake output must stand after a later failure")
	}
	if run.State(StageMatching) != StatusFailed {
		t.Fatalf("matching state = %s, want failed", run.State(StageMatching))
	}
	if run.State(StagePlanning) != StatusWaiting {
		t.Fatalf("planning state = %s, want waiting", run.State(StagePlanning))
	}
}

func TestRunCancelledMidStage(t *testing.T) {
	p := New(Deps{
		Extractor: stubExtractor{},
		Matcher:   stubMatcher{},
		Planner:   stubPlanner{},
	}, Config{IntakeDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	run, events := p.Run(ctx, "hello")
	cancel()

	got := collect(events)

	last := got[len(got)-1]
	if last.Stage != StageIntake || last.Status != StatusFailed {
		t.Fatalf("terminal event = %s/%s, want intake/failed", last.Stage, last.Status)
	}
	if run.State(StageIntake) != StatusFailed {
		t.Fatalf("intake state = %s, want failed", run.State(StageIntake))
	}
}

func TestGuardRecoversPanics(t *testing.T) {
	payload, err := guard(func() any { panic("boom") })
	if err == nil {
		t.Fatalf("expected an error from a panicking stage")
	}
	if payload != nil {
		t.Fatalf("expected no payload, got %v", payload)
	}

	payload, err = guard(func() any { return 42 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != 42 {
		t.Fatalf("payload = %v, want 42", payload)
	}
}
