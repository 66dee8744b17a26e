// Package intutils implements utility functions for working with ints
package intutils

// Min returns the minimum int in a sequence of ints
func Min(ints ...int) int {
	min := ints[0]
	for _, value := range ints[1:] {
		if value < min {
			min = value
		}
	}
	return min
}

// Max returns the maximum int in a sequence of ints
func Max(ints ...int) int {
	max := ints[0]
	for _, value := range ints[1:] {
		if value > max {
			max = value
		}
	}
	return max
}

// Prod returns the product of a sequence of ints
func Prod(ints ...int) int {
	prod := 1
	for _, value := range ints {
		prod *= value
	}
	return prod
}
