package tween

import "math"

// Easing maps linear progress k in [0, 1] to eased progress.
type Easing func(k float64) float64

func Linear(k float64) float64 { return k }

func QuadIn(k float64) float64 { return k * k }

func QuadOut(k float64) float64 { return k * (2 - k) }

// ElasticOut overshoots and settles on 1.
func ElasticOut(k float64) float64 {
	if k <= 0 {
		return 0
	}
	if k >= 1 {
		return 1
	}
	return math.Pow(2, -10*k)*math.Sin((k-0.1)*5*math.Pi) + 1
}
