package math

import "golang.org/x/exp/constraints"

// Sum adds up a slice of numbers. Used to check face vertex counts against
// the flattened index list.
func Sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}
