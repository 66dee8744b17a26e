package expreplay

import (
	"math/rand"

	"github.com/samuelfneumann/golagom/utils/intutils"
)

// SelectorType determines the method by which a Selector chooses
// samples from an experience replay buffer
type SelectorType string

const (
	// Uniform selects samples uniformly randomly
	Uniform SelectorType = "uniform"

	// Fifo selects the oldest samples first
	Fifo SelectorType = "fifo"
)

// CreateSelector is a factory method for creating a Selector of a
// specific type
func CreateSelector(t SelectorType, batchSize int, seed int64) Selector {
	switch t {
	case Fifo:
		return NewFifoSelector(batchSize)
	default:
		return NewUniformSelector(batchSize, seed)
	}
}

// Selector implements functionality for choosing how data should be
// sampled from an experience replay buffer
type Selector interface {
	// choose selects the indices at which data should be sampled from
	// the experience replay buffer
	choose(c orderedSampler) []int

	// BatchSize returns the number of elements that will be selected
	BatchSize() int
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly
type uniformSelector struct {
	samples int
	rng     *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly from an experience replay buffer
func NewUniformSelector(samples int, seed int64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{samples: samples, rng: rng}
}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (u *uniformSelector) BatchSize() int {
	return u.samples
}

// choose selects a number of indices at which to draw data from the
// buffer
func (u *uniformSelector) choose(c orderedSampler) []int {
	indices := c.sampleFrom()
	selected := make([]int, u.BatchSize())

	for i := 0; i < u.BatchSize(); i++ {
		selected[i] = indices[u.rng.Intn(len(indices))]
	}

	return selected
}

// fifoSelector is a Selector which selects data from an experience
// replay buffer as first-in-first-out.
type fifoSelector struct {
	samples int
}

// NewFifoSelector returns a new Selector which draws the oldest data
// from an experience replay buffer first
func NewFifoSelector(samples int) Selector {
	return &fifoSelector{samples: samples}
}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (f *fifoSelector) BatchSize() int {
	return f.samples
}

// choose selects a number of indices at which to draw data from the
// buffer
func (f *fifoSelector) choose(c orderedSampler) []int {
	size := intutils.Min(f.BatchSize(), c.Capacity())
	insertOrder := c.insertOrder(size)

	selected := make([]int, size)
	copy(selected, insertOrder)

	return selected
}
