package appraisal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) Result {
	args := m.Called(ctx, prompt, opts)
	return args.Get(0).(Result)
}

type recordedAppraisal struct {
	path    string
	failure string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedAppraisal
}

func (r *fakeRecorder) RecordAppraisal(path, failure string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedAppraisal{path: path, failure: failure})
}

func valuableHaul() mineral.Inventory {
	return mineral.Inventory{
		named("Iron Ore", mineral.Iron, mineral.Normal, 40),
		named("Dirt", mineral.Dirt, mineral.Poor, 0),
		named("Diamond", mineral.Diamond, mineral.Pristine, 2500),
		named("Iron Ore", mineral.Iron, mineral.High, 60),
	}
}

func TestAppraise_OfflineWhenNotRequested(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	d := &Dispatcher{Generator: gen, Available: true, MockDelay: 30 * time.Millisecond}

	start := time.Now()
	a := d.AppraiseDetailed(context.Background(), valuableHaul(), false)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Equal(t, PathOffline, a.Path)
	assert.Equal(t, FailureNone, a.Failure)
	assert.Equal(t, VerdictNotable, a.Verdict)
	assert.Equal(t, VerdictNotable.Text(), a.Text)
	assert.NotEmpty(t, a.ID)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppraise_OfflineWhenUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    *Dispatcher
	}{
		{"no credential", &Dispatcher{Generator: new(mockGenerator), Available: false, MockDelay: 10 * time.Millisecond}},
		{"no generator", &Dispatcher{Generator: nil, Available: true, MockDelay: 10 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			a := tt.d.AppraiseDetailed(context.Background(), valuableHaul(), true)

			assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
			assert.Equal(t, PathOffline, a.Path)
			assert.Equal(t, FailureUnavailable, a.Failure)
			assert.Equal(t, VerdictNotable.Text(), a.Text)
			if gen, ok := tt.d.Generator.(*mockGenerator); ok {
				gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAppraise_MockDelayIndependentOfSize(t *testing.T) {
	t.Parallel()

	big := make(mineral.Inventory, 0, 5000)
	for i := 0; i < 5000; i++ {
		big = append(big, named(fmt.Sprintf("Ore %d", i%37), mineral.Copper, mineral.Normal, 1))
	}

	for _, inv := range []mineral.Inventory{nil, big} {
		d := &Dispatcher{MockDelay: 25 * time.Millisecond}
		start := time.Now()
		text := d.Appraise(context.Background(), inv, false)
		assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
		assert.NotEmpty(t, text)
	}
}

func TestAppraise_DelegatedSuccess(t *testing.T) {
	t.Parallel()

	opts := GenerateOptions{MaxOutputTokens: 60, Temperature: 0.8}
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "2x Iron Ore (contains 1 high-quality), 1x Diamond (contains 1 high-quality)") &&
			!strings.Contains(p, "Dirt")
	}), opts).Return(Ok("By my beard, a pristine diamond!")).Once()

	d := &Dispatcher{Generator: gen, Available: true, MockDelay: time.Hour, Options: opts}
	a := d.AppraiseDetailed(context.Background(), valuableHaul(), true)

	assert.Equal(t, PathDelegated, a.Path)
	assert.Equal(t, VerdictGenerated, a.Verdict)
	assert.Equal(t, "By my beard, a pristine diamond!", a.Text)
	assert.Equal(t, FailureNone, a.Failure)
	gen.AssertExpectations(t)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestAppraise_ProviderErrorFallsBackOnUnfilteredInventory(t *testing.T) {
	t.Parallel()

	// Valuables alone total 600 (mediocre); with the hard stone the whole
	// haul totals 1200 (decent).
	inv := mineral.Inventory{
		named("Iron Ore", mineral.Iron, mineral.Normal, 600),
		named("Hard Stone", mineral.HardStone, mineral.Poor, 600),
	}

	core, logs := observer.New(zapcore.DebugLevel)
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(Err(errors.New("503 service unavailable"))).Once()

	d := &Dispatcher{Generator: gen, Available: true, Logger: logging.NewLoggerFromCore(core)}
	a := d.AppraiseDetailed(context.Background(), inv, true)

	assert.Equal(t, PathFallback, a.Path)
	assert.Equal(t, FailureProvider, a.Failure)
	assert.Equal(t, VerdictDecent, a.Verdict)
	assert.Equal(t, VerdictDecent.Text(), a.Text)
	gen.AssertNumberOfCalls(t, "Generate", 1)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	ctx := warns[0].ContextMap()
	assert.Equal(t, "provider_error", ctx["reason"])
	assert.Equal(t, "503 service unavailable", ctx["error"])
	assert.Equal(t, a.ID, ctx["appraisal_id"])
}

func TestAppraise_EmptyResponseFallsBack(t *testing.T) {
	t.Parallel()

	for _, blank := range []string{"", "   \n\t"} {
		core, logs := observer.New(zapcore.WarnLevel)
		gen := GeneratorFunc(func(context.Context, string, GenerateOptions) Result { return Ok(blank) })
		d := &Dispatcher{Generator: gen, Available: true, Logger: logging.NewLoggerFromCore(core)}

		a := d.AppraiseDetailed(context.Background(), valuableHaul(), true)

		assert.Equal(t, PathFallback, a.Path)
		assert.Equal(t, FailureEmpty, a.Failure)
		assert.Equal(t, VerdictNotable.Text(), a.Text)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, ErrEmptyResponse.Error(), logs.All()[0].ContextMap()["error"])
	}
}

func TestAppraise_PanickingGeneratorIsAbsorbed(t *testing.T) {
	t.Parallel()

	gen := GeneratorFunc(func(context.Context, string, GenerateOptions) Result { panic("socket melted") })
	d := &Dispatcher{Generator: gen, Available: true}

	a := d.AppraiseDetailed(context.Background(), valuableHaul(), true)
	assert.Equal(t, PathFallback, a.Path)
	assert.Equal(t, FailureProvider, a.Failure)
	assert.NotEmpty(t, a.Text)
}

func TestAppraise_OnlyDirtSkipsGeneratorAndDelay(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	d := &Dispatcher{Generator: gen, Available: true, MockDelay: 5 * time.Second}
	inv := mineral.Inventory{
		item(mineral.Dirt, mineral.Poor, 0),
		item(mineral.Stone, mineral.Normal, 1),
		item(mineral.HardStone, mineral.Pristine, 3),
	}

	start := time.Now()
	a := d.AppraiseDetailed(context.Background(), inv, true)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, PathOnlyDirt, a.Path)
	assert.Equal(t, VerdictOnlyDirt.Text(), a.Text)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppraise_EmptyInventoryDelegated(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	d := &Dispatcher{Generator: gen, Available: true}
	a := d.AppraiseDetailed(context.Background(), nil, true)

	assert.Equal(t, PathOnlyDirt, a.Path)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppraise_DefaultOptions(t *testing.T) {
	t.Parallel()

	var got GenerateOptions
	gen := GeneratorFunc(func(_ context.Context, _ string, opts GenerateOptions) Result {
		got = opts
		return Ok("hm.")
	})

	(&Dispatcher{Generator: gen, Available: true}).Appraise(context.Background(), valuableHaul(), true)
	assert.Equal(t, DefaultGenerateOptions(), got)

	(&Dispatcher{Generator: gen, Available: true, Options: GenerateOptions{Temperature: 0.2}}).
		Appraise(context.Background(), valuableHaul(), true)
	assert.Equal(t, GenerateOptions{MaxOutputTokens: 60, Temperature: 0.2}, got)
}

func TestAppraise_CancelledContextStillAnswers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &Dispatcher{MockDelay: time.Hour}
	start := time.Now()
	text := d.Appraise(ctx, nil, false)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, VerdictEmpty.Text(), text)
}

func TestAppraise_RecordsOutcome(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	gen := GeneratorFunc(func(context.Context, string, GenerateOptions) Result { return Err(errors.New("nope")) })
	d := &Dispatcher{Generator: gen, Available: true, Recorder: rec}

	d.Appraise(context.Background(), valuableHaul(), true)
	d.Appraise(context.Background(), nil, false)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedAppraisal{path: "fallback", failure: "provider_error"}, rec.calls[0])
	assert.Equal(t, recordedAppraisal{path: "offline", failure: ""}, rec.calls[1])
}

func TestAppraise_ConcurrentCallsShareNoState(t *testing.T) {
	t.Parallel()

	gen := GeneratorFunc(func(_ context.Context, prompt string, _ GenerateOptions) Result {
		if strings.Contains(prompt, "Ruby") {
			return Err(errors.New("flaky"))
		}
		return Ok("echo: " + prompt[strings.Index(prompt, "goods: "):])
	})
	d := &Dispatcher{Generator: gen, Available: true, MockDelay: time.Millisecond}

	const n = 32
	var wg sync.WaitGroup
	results := make([]Appraisal, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				inv := mineral.Inventory{named(fmt.Sprintf("Gold %d", i), mineral.Gold, mineral.Normal, 10)}
				results[i] = d.AppraiseDetailed(context.Background(), inv, true)
			case 1:
				inv := mineral.Inventory{named("Ruby", mineral.Ruby, mineral.Poor, 200)}
				results[i] = d.AppraiseDetailed(context.Background(), inv, true)
			default:
				results[i] = d.AppraiseDetailed(context.Background(), nil, false)
			}
		}(i)
	}
	wg.Wait()

	ids := make(map[string]bool)
	for i, a := range results {
		assert.False(t, ids[a.ID], "duplicate appraisal id %s", a.ID)
		ids[a.ID] = true

		switch i % 3 {
		case 0:
			assert.Equal(t, PathDelegated, a.Path)
			assert.Contains(t, a.Text, fmt.Sprintf("1x Gold %d.", i))
		case 1:
			assert.Equal(t, PathFallback, a.Path)
			assert.Equal(t, VerdictNotable.Text(), a.Text)
		default:
			assert.Equal(t, VerdictEmpty.Text(), a.Text)
		}
	}
}
