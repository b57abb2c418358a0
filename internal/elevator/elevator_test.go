package elevator

import (
	"context"
	"errors"
	"testing"
)

type staticSource struct {
	depths map[int]bool
	err    error
}

func (s staticSource) UnlockedDepths(context.Context) (map[int]bool, error) {
	return s.depths, s.err
}

type countingRecorder struct {
	results []string
}

func (r *countingRecorder) RecordTravel(result string) {
	r.results = append(r.results, result)
}

func TestFloors(t *testing.T) {
	t.Parallel()

	p := New(nil, map[int]bool{250: true, 1000: true, 9999: true}, nil)
	floors := p.Floors()

	if len(floors) != len(DefaultDepths) {
		t.Fatalf("len(floors) = %d, want %d", len(floors), len(DefaultDepths))
	}
	for i, f := range floors {
		if f.Depth != DefaultDepths[i] {
			t.Errorf("floors[%d].Depth = %d, want %d", i, f.Depth, DefaultDepths[i])
		}
		wantUnlocked := f.Depth == 250 || f.Depth == 1000
		if f.Unlocked != wantUnlocked {
			t.Errorf("floor %d unlocked = %v, want %v", f.Depth, f.Unlocked, wantUnlocked)
		}
	}
	if floors[1].Label != "-250m" {
		t.Errorf("Label = %q, want -250m", floors[1].Label)
	}
	if n := p.UnlockedCount(); n != 2 {
		t.Errorf("UnlockedCount() = %d, want 2 (unlisted depths ignored)", n)
	}
}

func TestTravel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		depth   int
		wantErr error
		fired   bool
	}{
		{name: "unlocked", depth: 500, fired: true},
		{name: "locked", depth: 2000, wantErr: ErrLocked},
		{name: "not listed", depth: 42, wantErr: ErrUnknownDepth},
		{name: "unlocked but not listed", depth: 777, wantErr: ErrUnknownDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fired []int
			p := New(nil, map[int]bool{500: true, 777: true}, func(d int) { fired = append(fired, d) })

			err := p.Travel(tt.depth)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Travel(%d) error = %v, want %v", tt.depth, err, tt.wantErr)
			}
			if tt.fired && (len(fired) != 1 || fired[0] != tt.depth) {
				t.Errorf("OnTravel calls = %v, want [%d]", fired, tt.depth)
			}
			if !tt.fired && len(fired) != 0 {
				t.Errorf("OnTravel fired for %d: %v", tt.depth, fired)
			}
		})
	}
}

func TestTravel_Recorder(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	p := New([]int{10, 20}, map[int]bool{10: true}, nil)
	p.Recorder = rec

	_ = p.Travel(10)
	_ = p.Travel(20)
	_ = p.Travel(30)

	want := []string{ResultTraveled, ResultLocked, ResultUnknown}
	if len(rec.results) != len(want) {
		t.Fatalf("results = %v, want %v", rec.results, want)
	}
	for i := range want {
		if rec.results[i] != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, rec.results[i], want[i])
		}
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	t.Parallel()

	depths := []int{10, 20}
	unlocked := map[int]bool{10: true, 20: false}
	p := New(depths, unlocked, nil)

	depths[0] = 99
	unlocked[20] = true

	if p.Depths[0] != 10 {
		t.Error("panel aliases the depth slice")
	}
	if p.Unlocked[20] {
		t.Error("panel aliases the unlocked map")
	}
	if _, ok := p.Unlocked[20]; ok {
		t.Error("false entries should not be kept")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	p, err := Load(context.Background(), []int{5, 15}, staticSource{depths: map[int]bool{15: true}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Floors()[0].Unlocked || !p.Floors()[1].Unlocked {
		t.Errorf("Floors() = %+v", p.Floors())
	}

	boom := errors.New("disk on fire")
	if _, err := Load(context.Background(), nil, staticSource{err: boom}, nil); !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}
