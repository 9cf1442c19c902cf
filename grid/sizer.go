package grid

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned when a message cannot fit in a grid.
var ErrCapacity = errors.New("grid: capacity exceeded")

// SizeFor returns the smallest size, starting at min and growing by step,
// whose layout fits and leaves at least required data cells. An error
// wrapping ErrCapacity is returned if no size up to max will do.
func SizeFor(required int, l Layout, min, step, max int) (int, error) {
	if min < 1 {
		min = 1
	}
	if step < 1 {
		step = 1
	}
	for n := min; n <= max; n += step {
		if l.Fits(n) && l.Capacity(n) >= required {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %d data cells need a grid larger than %d", ErrCapacity, required, max)
}
