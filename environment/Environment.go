// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golagom/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when an episode ends. Enders modify the StepType
// field of a TimeStep to timestep.Last when the episode has ended.
type Ender interface {
	// End takes the next timestep in the environment and modifies its
	// StepType field to timestep.Last if the timestep ends the
	// episode, returning whether the episode ended
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme and episode termination scheme for
// taking actions in some environment
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking an action in some state
	// which led to some next state
	GetReward(state, action, nextState mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Matrix) bool

	Min() float64 // Minimum possible reward of the Task
	Max() float64 // Maximum possible reward of the Task

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task

	// Reset resets the environment between episodes, returning the
	// first timestep of the new episode
	Reset() timestep.TimeStep

	// Step takes one environmental step given the argument action,
	// returning the next timestep and whether it is the last timestep
	// of the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Seeder is an Environment whose randomness can be reseeded after
// construction
type Seeder interface {
	Environment
	Seed(uint64) error
}
