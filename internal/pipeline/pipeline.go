// Package pipeline sequences the three inference stages (intake, matching,
// planning) and streams progressive per-stage results to the consumer.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
	"github.com/networkout/networkout/internal/logger"
	"github.com/networkout/networkout/internal/matching"
	"github.com/networkout/networkout/internal/planning"
	"github.com/networkout/networkout/internal/utils"
)

// ProfileExtractor produces a Profile from raw text. Implementations must
// not fail outward.
type ProfileExtractor interface {
	Extract(text string) *intake.Profile
}

// Matcher ranks providers for a profile.
type Matcher interface {
	Match(profile *intake.Profile) *matching.Result
}

// Planner synthesizes a plan for a profile and its matched provider.
type Planner interface {
	Synthesize(profile *intake.Profile, provider *catalog.Provider) *planning.Result
}

// Deps aggregates the stage implementations shared by all runs. Catalogs
// are owned by the stage components and read-only for the process lifetime,
// so concurrent runs need no locking.
type Deps struct {
	Logger    *zap.Logger
	Extractor ProfileExtractor
	Matcher   Matcher
	Planner   Planner
}

// Config carries the simulated per-stage think time. Delays are bounded and
// deterministic; zero disables waiting (used by tests).
type Config struct {
	IntakeDelay   time.Duration `mapstructure:"intake-delay"`
	MatchingDelay time.Duration `mapstructure:"matching-delay"`
	PlanningDelay time.Duration `mapstructure:"planning-delay"`
}

// DefaultConfig mirrors the latency envelope of the original experience.
func DefaultConfig() Config {
	return Config{
		IntakeDelay:   3 * time.Second,
		MatchingDelay: 4 * time.Second,
		PlanningDelay: 3500 * time.Millisecond,
	}
}

// Pipeline is the reusable orchestrator factory.
type Pipeline struct {
	deps Deps
	cfg  Config
}

func New(deps Deps, cfg Config) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Pipeline{deps: deps, cfg: cfg}
}

// Run is one pipeline execution. Its stage states can be inspected while
// the run progresses.
type Run struct {
	ID string

	mu      sync.Mutex
	states  map[Stage]Status
	current int
}

// State returns the current status of a stage.
func (r *Run) State(stage Stage) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[stage]
}

// CurrentStage returns the index of the stage currently executing (or the
// last one touched).
func (r *Run) CurrentStage() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Run) setState(idx int, stage Stage, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = idx
	r.states[stage] = status
}

// Run starts a pipeline execution and returns the run handle plus its event
// stream. The channel is buffered for the full event budget, so a slow
// consumer never blocks the pipeline, and is closed when the run settles.
// Cancelling ctx mid-stage discards that stage's partial output and ends
// the run with a failed event; already-delivered payloads stand.
func (p *Pipeline) Run(ctx context.Context, text string) (*Run, <-chan Event) {
	run := &Run{
		ID: uuid.NewString(),
		states: map[Stage]Status{
			StageIntake:   StatusWaiting,
			StageMatching: StatusWaiting,
			StagePlanning: StatusWaiting,
		},
	}

	// 2 events per stage plus one terminal failure.
	events := make(chan Event, 2*len(stages)+1)

	go p.execute(ctx, run, text, events)

	return run, events
}

func (p *Pipeline) execute(ctx context.Context, run *Run, text string, events chan<- Event) {
	defer close(events)

	log := logger.WithRunFields(p.deps.Logger, run.ID)

	var profile *intake.Profile
	var match *matching.Result

	stageFns := []func() any{
		func() any {
			profile = p.deps.Extractor.Extract(text)
			return profile
		},
		func() any {
			match = p.deps.Matcher.Match(profile)
			return match
		},
		func() any {
			var provider *catalog.Provider
			if match != nil && match.Recommended != nil {
				provider = match.Recommended.Provider
			}
			return p.deps.Planner.Synthesize(profile, provider)
		},
	}
	delays := []time.Duration{p.cfg.IntakeDelay, p.cfg.MatchingDelay, p.cfg.PlanningDelay}

	for idx, stage := range stages {
		run.setState(idx, stage, StatusAnalyzing)
		events <- Event{RunID: run.ID, Stage: stage, Status: StatusAnalyzing}
		log.Info("stage started", zap.String(logger.FieldStage, string(stage)))

		started := time.Now()
		if err := utils.WaitFor(ctx, delays[idx]); err != nil {
			run.setState(idx, stage, StatusFailed)
			events <- Event{RunID: run.ID, Stage: stage, Status: StatusFailed, Error: err.Error()}
			log.Warn("run cancelled mid-stage", zap.String(logger.FieldStage, string(stage)), zap.Error(err))
			return
		}

		payload, err := guard(stageFns[idx])
		if err != nil {
			// A fault escaping the stage's own fallback boundary halts the
			// pipeline; completed stages keep their published output.
			run.setState(idx, stage, StatusFailed)
			events <- Event{RunID: run.ID, Stage: stage, Status: StatusFailed, Error: err.Error()}
			log.Error("pipeline failure", zap.String(logger.FieldStage, string(stage)), zap.Error(err))
			return
		}

		run.setState(idx, stage, StatusComplete)
		events <- Event{RunID: run.ID, Stage: stage, Status: StatusComplete, Payload: payload}
		log.Info("stage complete",
			zap.String(logger.FieldStage, string(stage)),
			zap.Duration("took", time.Since(started)),
		)
	}
}

// guard is the defensive outer boundary applied identically to every
// stage invocation. Stage components carry their own fallback values; this
// catches anything that escapes them.
func guard(fn func() any) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage fault: %v", r)
		}
	}()
	return fn(), nil
}
