package coverage

import (
	"testing"
)

// buffer builds n RGBA samples; the first black of them are solid black and
// the rest are opaque white.
func buffer(n, black int) []byte {
	pix := make([]byte, n*4)
	for i := 0; i < n; i++ {
		o := i * 4
		if i < black {
			pix[o+3] = 255
			continue
		}
		pix[o], pix[o+1], pix[o+2], pix[o+3] = 255, 255, 255, 255
	}
	return pix
}

func TestCountMatching_ThirtySevenOfHundred(t *testing.T) {
	pix := buffer(100, 37)
	if got := CountMatching(pix, SolidBlack); got != 37 {
		t.Fatalf("CountMatching = %d, want 37", got)
	}
}

func TestCountMatching_IgnoresPartialTrailingSample(t *testing.T) {
	pix := append(buffer(4, 4), 0, 0, 0)
	if got := CountMatching(pix, SolidBlack); got != 4 {
		t.Fatalf("CountMatching = %d, want 4", got)
	}
	if got := CountMatching(nil, SolidBlack); got != 0 {
		t.Fatalf("CountMatching(nil) = %d, want 0", got)
	}
}

func TestSolidBlack(t *testing.T) {
	cases := []struct {
		r, g, b, a uint8
		want       bool
	}{
		{0, 0, 0, 255, true},
		{0, 0, 0, 254, false},
		{0, 0, 0, 0, false},
		{1, 0, 0, 255, false},
		{0, 0, 1, 255, false},
	}
	for _, c := range cases {
		if got := SolidBlack(c.r, c.g, c.b, c.a); got != c.want {
			t.Errorf("SolidBlack(%d,%d,%d,%d) = %v, want %v", c.r, c.g, c.b, c.a, got, c.want)
		}
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		remaining, baseline, want int
	}{
		{0, 0, 100},
		{10, 0, 100},
		{0, 100, 100},
		{100, 100, 0},
		{20, 100, 80},
		{19, 100, 81},
		{1, 3, 66}, // ceil(33.3) = 34
		{2, 3, 33}, // ceil(66.6) = 67
		{1, 1000, 99},
	}
	for _, c := range cases {
		if got := Progress(c.remaining, c.baseline); got != c.want {
			t.Errorf("Progress(%d, %d) = %d, want %d", c.remaining, c.baseline, got, c.want)
		}
	}
}

func TestEvaluator_CaptureThenEvaluate(t *testing.T) {
	e := NewEvaluator(80)
	if got := e.Capture(buffer(100, 50)); got != 50 {
		t.Fatalf("baseline = %d, want 50", got)
	}

	progress, complete := e.Evaluate(buffer(100, 20))
	if progress != 60 || complete {
		t.Fatalf("Evaluate = (%d, %v), want (60, false)", progress, complete)
	}

	progress, complete = e.Evaluate(buffer(100, 10))
	if progress != 80 || !complete {
		t.Fatalf("Evaluate = (%d, %v), want (80, true)", progress, complete)
	}
}

func TestEvaluator_ZeroBaselineIsComplete(t *testing.T) {
	e := NewEvaluator(90)
	e.Capture(buffer(10, 0))
	progress, complete := e.Evaluate(buffer(10, 0))
	if progress != 100 || !complete {
		t.Fatalf("Evaluate with zero baseline = (%d, %v), want (100, true)", progress, complete)
	}
}

func TestEvaluator_NilMatchDefaultsToSolidBlack(t *testing.T) {
	e := &Evaluator{MinProgress: 50}
	if got := e.Capture(buffer(8, 3)); got != 3 {
		t.Fatalf("baseline = %d, want 3", got)
	}
	if e.Baseline() != 3 {
		t.Fatalf("Baseline() = %d, want 3", e.Baseline())
	}
}
