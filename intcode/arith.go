package intcode

import (
	"math"
)

// addWord adds two words, failing with ErrOverflow instead of wrapping.
func addWord(a, b Word) (sum Word, err error) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		sum = 0
		err = ErrOverflow
	}
	return
}

// mulWord multiplies two words, failing with ErrOverflow instead of wrapping.
func mulWord(a, b Word) (product Word, err error) {
	if a == 0 || b == 0 {
		return
	}

	// MinInt64 * -1 wraps to MinInt64, and MinInt64 / -1 hides it.
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		err = ErrOverflow
		return
	}

	product = a * b
	if product/b != a {
		product = 0
		err = ErrOverflow
	}
	return
}
