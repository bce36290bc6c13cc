// Package coverage measures how much of a raster buffer still matches a
// pixel predicate. The drawing surface uses it to decide when a shape has
// been revealed.
package coverage

// Predicate reports whether one RGBA sample matches.
type Predicate func(r, g, b, a uint8) bool

// SolidBlack matches fully opaque pure black, the colour of an unrevealed
// silhouette pixel.
func SolidBlack(r, g, b, a uint8) bool {
	return int(r)+int(g)+int(b) == 0 && a == 255
}

// CountMatching scans pix in strides of four bytes (R, G, B, A) and counts
// the samples for which match returns true. A trailing partial sample is
// ignored.
func CountMatching(pix []byte, match Predicate) int {
	n := 0
	for i := 0; i+3 < len(pix); i += 4 {
		if match(pix[i], pix[i+1], pix[i+2], pix[i+3]) {
			n++
		}
	}
	return n
}

// Progress converts a remaining-pixel count into a completion percentage
// relative to baseline: 100 - ceil(remaining / baseline * 100).
// A baseline of zero (nothing to draw) counts as fully complete.
func Progress(remaining, baseline int) int {
	if baseline <= 0 {
		return 100
	}
	if remaining <= 0 {
		return 100
	}
	return 100 - (remaining*100+baseline-1)/baseline
}

// Evaluator tracks the baseline for the current shape and judges completion
// against MinProgress.
type Evaluator struct {
	MinProgress int
	Match       Predicate // defaults to SolidBlack

	baseline int
}

// NewEvaluator returns an evaluator using SolidBlack.
func NewEvaluator(minProgress int) *Evaluator {
	return &Evaluator{MinProgress: minProgress, Match: SolidBlack}
}

func (e *Evaluator) match() Predicate {
	if e.Match == nil {
		return SolidBlack
	}
	return e.Match
}

// Capture records the number of matching pixels in pix as the baseline and
// returns it.
func (e *Evaluator) Capture(pix []byte) int {
	e.baseline = CountMatching(pix, e.match())
	return e.baseline
}

// Baseline returns the last captured baseline.
func (e *Evaluator) Baseline() int {
	return e.baseline
}

// Evaluate measures pix against the baseline.
func (e *Evaluator) Evaluate(pix []byte) (progress int, complete bool) {
	remaining := CountMatching(pix, e.match())
	progress = Progress(remaining, e.baseline)
	return progress, progress >= e.MinProgress
}
