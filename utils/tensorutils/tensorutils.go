// Package tensorutils provides utilities for working with tensors and
// the learnable nodes of computational graphs
package tensorutils

import (
	"fmt"
	"math"

	G "gorgonia.org/gorgonia"
)

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// ClipGradNorm rescales the gradients of the argument nodes so that
// their global L2 norm is at most maxNorm. The gradients are modified
// in place. The global norm of the gradients before rescaling is
// returned.
//
// The nodes must have had their gradients computed, e.g. by running a
// VM created with BindDualValues on a graph on which Grad() was called.
func ClipGradNorm(nodes G.Nodes, maxNorm float64) (float64, error) {
	grads := make([][]float64, len(nodes))

	sumSquares := 0.0
	for i, node := range nodes {
		grad, err := node.Grad()
		if err != nil {
			return 0, fmt.Errorf("clipgradnorm: could not get gradient "+
				"of node %v: %v", node.Name(), err)
		}

		data, ok := grad.Data().([]float64)
		if !ok {
			return 0, fmt.Errorf("clipgradnorm: gradient of node %v is "+
				"not []float64", node.Name())
		}
		grads[i] = data

		for _, value := range data {
			sumSquares += value * value
		}
	}

	norm := math.Sqrt(sumSquares)
	if norm <= maxNorm || norm == 0 {
		return norm, nil
	}

	scale := maxNorm / norm
	for _, data := range grads {
		for i := range data {
			data[i] *= scale
		}
	}
	return norm, nil
}
