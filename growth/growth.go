// Package growth samples complexity classes as functions of input size, the
// way a growth chart plots them.
package growth

import (
	"math"

	"github.com/TFMV/bigocode/types"
)

// MaxN is the largest input size in a Series.
const MaxN = 100

// Point is one chart sample.
type Point struct {
	N     int     `json:"n"`
	Time  float64 `json:"time"`
	Space float64 `json:"space"`
}

// Sample evaluates class at n. Classes without a closed form here (cubic and
// above, factorial, O(n·2^n)) sample as 0.
func Sample(class types.ComplexityClass, n int) float64 {
	x := float64(n)
	switch class {
	case types.Constant:
		return 1
	case types.Logarithmic:
		return math.Log(x)
	case types.Linear:
		return x
	case types.Linearithmic:
		return x * math.Log(x)
	case types.Quadratic:
		return x * x
	case types.Exponential:
		return math.Pow(2, x)
	default:
		return 0
	}
}

// Series samples time and space for n = 1..MaxN.
func Series(time, space types.ComplexityClass) []Point {
	points := make([]Point, 0, MaxN)
	for n := 1; n <= MaxN; n++ {
		points = append(points, Point{
			N:     n,
			Time:  Sample(time, n),
			Space: Sample(space, n),
		})
	}
	return points
}
