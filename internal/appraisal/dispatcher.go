package appraisal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// DefaultMockDelay is how long the offline path pretends to think.
const DefaultMockDelay = 800 * time.Millisecond

// Path records which branch produced an appraisal.
type Path string

const (
	// PathOffline is the heuristic verdict after the mock delay.
	PathOffline Path = "offline"
	// PathDelegated is text returned verbatim by the generator.
	PathDelegated Path = "delegated"
	// PathFallback is the heuristic verdict after a failed generation.
	PathFallback Path = "fallback"
	// PathOnlyDirt is the immediate reply when nothing valuable was brought.
	PathOnlyDirt Path = "only_dirt"
)

// Recorder receives one observation per appraisal.
type Recorder interface {
	RecordAppraisal(path string, failure string, elapsed time.Duration)
}

// Appraisal is the detailed outcome of one Appraise call.
type Appraisal struct {
	ID      string
	Text    string
	Path    Path
	Verdict Verdict // VerdictGenerated when Path is PathDelegated
	Failure Failure
}

// Dispatcher chooses between the heuristic verdict and delegated
// generation. It holds no per-call state, so one Dispatcher may serve any
// number of concurrent appraisals.
type Dispatcher struct {
	// Generator is the external capability. Nil forces the offline path.
	Generator Generator
	// Available reports whether credentials for Generator are configured.
	Available bool
	// MockDelay is the minimum latency of the offline path. A cancelled ctx
	// ends the wait early.
	MockDelay time.Duration
	// Options bound each generation request.
	Options GenerateOptions
	// Persona overrides DefaultPersona when non-empty.
	Persona string

	Logger   logging.Logger
	Recorder Recorder
}

// Appraise returns the verdict text for inv. It always returns a non-empty
// string and never surfaces generator failures.
func (d *Dispatcher) Appraise(ctx context.Context, inv mineral.Inventory, useDelegated bool) string {
	return d.AppraiseDetailed(ctx, inv, useDelegated).Text
}

// AppraiseDetailed is Appraise plus the branch taken and any failure that
// forced a fallback. The generator is called at most once.
func (d *Dispatcher) AppraiseDetailed(ctx context.Context, inv mineral.Inventory, useDelegated bool) Appraisal {
	start := time.Now()
	snapshot := inv.Clone()
	id := uuid.NewString()
	log := logging.OrNop(d.Logger).With(logging.String("appraisal_id", id))

	var a Appraisal
	switch {
	case !useDelegated:
		a = d.offline(ctx, snapshot, FailureNone)
	case !d.Available || d.Generator == nil:
		log.Debug("delegated generation unavailable; using heuristic", logging.Err(ErrUnavailable))
		a = d.offline(ctx, snapshot, FailureUnavailable)
	default:
		a = d.delegated(ctx, snapshot, log)
	}
	a.ID = id

	if d.Recorder != nil {
		d.Recorder.RecordAppraisal(string(a.Path), string(a.Failure), time.Since(start))
	}
	return a
}

// offline waits out the mock delay and returns the heuristic verdict. A
// cancelled ctx ends the wait early; the verdict is unaffected.
func (d *Dispatcher) offline(ctx context.Context, inv mineral.Inventory, failure Failure) Appraisal {
	if d.MockDelay > 0 {
		timer := time.NewTimer(d.MockDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	v := Heuristic(inv)
	return Appraisal{Text: v.Text(), Path: PathOffline, Verdict: v, Failure: failure}
}

func (d *Dispatcher) delegated(ctx context.Context, inv mineral.Inventory, log logging.Logger) Appraisal {
	valuables := Valuables(inv)
	if len(valuables) == 0 {
		return Appraisal{Text: VerdictOnlyDirt.Text(), Path: PathOnlyDirt, Verdict: VerdictOnlyDirt}
	}

	prompt := BuildPrompt(d.Persona, Summarize(GroupByName(valuables)))
	res := d.generate(ctx, prompt)

	failure := res.Failure()
	if failure == FailureNone {
		return Appraisal{Text: res.Text, Path: PathDelegated, Verdict: VerdictGenerated}
	}

	err := res.Err
	if failure == FailureEmpty {
		err = ErrEmptyResponse
	}
	log.Warn("delegated appraisal failed; falling back to heuristic",
		logging.String("reason", string(failure)),
		logging.Int("valuables", len(valuables)),
		logging.Err(err),
	)

	// The fallback judges everything the miner brought, not just valuables.
	v := Heuristic(inv)
	return Appraisal{Text: v.Text(), Path: PathFallback, Verdict: v, Failure: failure}
}

// generate makes the single generation attempt, converting a panicking
// generator into a provider error.
func (d *Dispatcher) generate(ctx context.Context, prompt string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Err(fmt.Errorf("generator panicked: %v", r))
		}
	}()
	return d.Generator.Generate(ctx, prompt, d.options())
}

// options returns d.Options, or the defaults when none were set. A zero
// token budget is never sent.
func (d *Dispatcher) options() GenerateOptions {
	if d.Options == (GenerateOptions{}) {
		return DefaultGenerateOptions()
	}
	opts := d.Options
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultGenerateOptions().MaxOutputTokens
	}
	return opts
}
