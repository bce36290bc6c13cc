package tween

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTween_LinearInterpolation(t *testing.T) {
	g := NewGroup()
	v := 0.0
	tw := g.New(&v).To(10, 100*time.Millisecond).Start(t0)

	g.Update(t0.Add(50 * time.Millisecond))
	if !approx(v, 5) {
		t.Fatalf("v at half time = %v, want 5", v)
	}
	if !tw.Playing() {
		t.Fatal("tween should still be playing")
	}

	g.Update(t0.Add(200 * time.Millisecond))
	if !approx(v, 10) {
		t.Fatalf("v after end = %v, want 10", v)
	}
	if tw.Playing() || g.Len() != 0 {
		t.Fatalf("tween should be finished and removed (playing=%v len=%d)", tw.Playing(), g.Len())
	}
}

func TestTween_CallbacksFireOnce(t *testing.T) {
	g := NewGroup()
	v := 1.0
	starts, completes := 0, 0
	g.New(&v).To(0, 20*time.Millisecond).
		OnStart(func() { starts++ }).
		OnComplete(func() { completes++ }).
		Start(t0)

	for i := 0; i < 5; i++ {
		g.Update(t0.Add(time.Duration(i*10) * time.Millisecond))
	}
	if starts != 1 || completes != 1 {
		t.Fatalf("starts=%d completes=%d, want 1 and 1", starts, completes)
	}
}

func TestTween_OnStartDeferredUntilUpdate(t *testing.T) {
	g := NewGroup()
	v := 0.0
	started := false
	g.New(&v).To(1, time.Second).OnStart(func() { started = true }).Start(t0)
	if started {
		t.Fatal("OnStart fired before first update")
	}
	g.Update(t0)
	if !started {
		t.Fatal("OnStart did not fire on first update")
	}
}

func TestTween_ChainRunsSequentially(t *testing.T) {
	g := NewGroup()
	scale := 1.0
	var order []string

	grow := g.New(&scale).To(1, 300*time.Millisecond).
		OnStart(func() { order = append(order, "grow-start") }).
		OnComplete(func() { order = append(order, "grow-done") })
	shrink := g.New(&scale).To(0, 200*time.Millisecond).
		OnStart(func() { order = append(order, "shrink-start") }).
		OnComplete(func() { order = append(order, "shrink-done") }).
		Chain(grow)

	shrink.Start(t0)
	g.Update(t0.Add(100 * time.Millisecond))
	if !approx(scale, 0.5) {
		t.Fatalf("scale mid-shrink = %v, want 0.5", scale)
	}

	// Completing the shrink starts grow in the same update.
	g.Update(t0.Add(200 * time.Millisecond))
	if !grow.Playing() {
		t.Fatal("chained tween not started")
	}
	if !approx(scale, 0) {
		t.Fatalf("scale at chain boundary = %v, want 0", scale)
	}

	g.Update(t0.Add(350 * time.Millisecond))
	if !approx(scale, 0.5) {
		t.Fatalf("scale mid-grow = %v, want 0.5", scale)
	}

	g.Update(t0.Add(600 * time.Millisecond))
	want := []string{"shrink-start", "shrink-done", "grow-start", "grow-done"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !approx(scale, 1) {
		t.Fatalf("final scale = %v, want 1", scale)
	}
}

func TestTween_RestartWhilePlaying(t *testing.T) {
	g := NewGroup()
	v := 0.0
	tw := g.New(&v).To(10, 100*time.Millisecond).Start(t0)
	g.Update(t0.Add(50 * time.Millisecond))

	tw.Start(t0.Add(50 * time.Millisecond))
	if g.Len() != 1 {
		t.Fatalf("restart duplicated tween in group, len=%d", g.Len())
	}
	g.Update(t0.Add(100 * time.Millisecond))
	if !approx(v, 7.5) {
		t.Fatalf("v = %v, want 7.5 (restarted from 5)", v)
	}
}

func TestTween_StopSkipsCompletion(t *testing.T) {
	g := NewGroup()
	v := 0.0
	done := false
	tw := g.New(&v).To(1, 100*time.Millisecond).OnComplete(func() { done = true }).Start(t0)
	tw.Stop()
	g.Update(t0.Add(time.Second))
	if done || v != 0 {
		t.Fatalf("stopped tween advanced: done=%v v=%v", done, v)
	}
}

func TestTween_ZeroDurationCompletesImmediately(t *testing.T) {
	g := NewGroup()
	v := 3.0
	g.New(&v).To(9, 0).Start(t0)
	g.Update(t0)
	if v != 9 {
		t.Fatalf("v = %v, want 9", v)
	}
}

func TestEasingEndpoints(t *testing.T) {
	for name, e := range map[string]Easing{"linear": Linear, "quadIn": QuadIn, "quadOut": QuadOut, "elasticOut": ElasticOut} {
		if got := e(0); !approx(got, 0) {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := e(1); !approx(got, 1) {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
	if ElasticOut(0.2) <= 1 {
		t.Errorf("ElasticOut should overshoot early, got %v at 0.2", ElasticOut(0.2))
	}
}
