// Package checkpointer implements functionality for saving agent state
// periodically during an experiment
package checkpointer

import (
	ts "github.com/samuelfneumann/golagom/timestep"
)

// Serializable is an object that can save its state to a file
type Serializable interface {
	Save(path string) error
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
