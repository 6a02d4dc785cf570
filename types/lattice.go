package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var rankTable = map[ComplexityClass]int{
	Constant:     100,
	Logarithmic:  200,
	Linear:       300,
	Linearithmic: 400,
	Quadratic:    502,
	Cubic:        503,
	Exponential:  700,
	Factorial:    800,
}

var polynomialLabel = regexp.MustCompile(`^O\(n\^(\d+)\)$`)

// maxPolynomialDegree keeps O(n^k) ranks below O(2^n).
const maxPolynomialDegree = 199

// Rank returns the position of c in the complexity order. Labels outside the
// order, including O(n·2^n), rank 0.
func Rank(c ComplexityClass) int {
	if r, ok := rankTable[c]; ok {
		return r
	}
	if m := polynomialLabel.FindStringSubmatch(string(c)); m != nil {
		k, err := strconv.Atoi(m[1])
		if err != nil || k < 2 {
			return 0
		}
		if k > maxPolynomialDegree {
			k = maxPolynomialDegree
		}
		return 500 + k
	}
	return 0
}

// Ranked reports whether c takes part in the complexity order.
func Ranked(c ComplexityClass) bool {
	return Rank(c) > 0
}

// Max returns candidate if it ranks strictly above current, otherwise
// current. An unranked current is replaced by any ranked candidate.
func Max(current, candidate ComplexityClass) ComplexityClass {
	if Rank(candidate) > Rank(current) {
		return candidate
	}
	return current
}

// Polynomial returns the class for k nested loops.
func Polynomial(k int) ComplexityClass {
	switch {
	case k <= 0:
		return Constant
	case k == 1:
		return Linear
	case k == 2:
		return Quadratic
	case k == 3:
		return Cubic
	default:
		return ComplexityClass(fmt.Sprintf("O(n^%d)", k))
	}
}
