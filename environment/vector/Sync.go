// Package vector implements vectorized environments, which batch
// together multiple instances of an environment behind a single
// reset/step interface
package vector

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/timestep"
)

// Sync implements a synchronous vectorized environment. The wrapped
// environment instances are stepped one after another in the calling
// goroutine, so no synchronization is needed by callers.
//
// All instances must share observation and action specifications.
// Specs reported by a Sync are those of the first wrapped instance.
type Sync struct {
	envs []environment.Environment
}

// NewSync returns a new Sync wrapping the argument environment
// instances
func NewSync(envs []environment.Environment) (*Sync, error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("newSync: at least one environment required")
	}

	obsDim := envs[0].ObservationSpec().Shape.Len()
	actionDim := envs[0].ActionSpec().Shape.Len()
	for i, e := range envs[1:] {
		if e.ObservationSpec().Shape.Len() != obsDim {
			return nil, fmt.Errorf("newSync: environment %v observation "+
				"dimension \n\twant(%v)\n\thave(%v)", i+1, obsDim,
				e.ObservationSpec().Shape.Len())
		}
		if e.ActionSpec().Shape.Len() != actionDim {
			return nil, fmt.Errorf("newSync: environment %v action "+
				"dimension \n\twant(%v)\n\thave(%v)", i+1, actionDim,
				e.ActionSpec().Shape.Len())
		}
	}

	return &Sync{envs: envs}, nil
}

// Len returns the number of wrapped environment instances
func (s *Sync) Len() int {
	return len(s.envs)
}

// Reset resets every wrapped instance and returns their first
// timesteps
func (s *Sync) Reset() []timestep.TimeStep {
	steps := make([]timestep.TimeStep, len(s.envs))
	for i, e := range s.envs {
		steps[i] = e.Reset()
	}
	return steps
}

// Seed reseeds every wrapped instance that supports reseeding,
// offsetting the argument seed by the instance index
func (s *Sync) Seed(seed uint64) error {
	for i, e := range s.envs {
		seeder, ok := e.(environment.Seeder)
		if !ok {
			continue
		}
		if err := seeder.Seed(seed + uint64(i)); err != nil {
			return fmt.Errorf("seed: could not seed environment %v: %v", i,
				err)
		}
	}
	return nil
}

// Step steps every wrapped instance with its corresponding action,
// returning the resulting timesteps and episode-end flags. The first
// environment error aborts the step and is returned.
func (s *Sync) Step(actions []*mat.VecDense) ([]timestep.TimeStep, []bool,
	error) {
	if len(actions) != len(s.envs) {
		return nil, nil, fmt.Errorf("step: invalid number of actions "+
			"\n\twant(%v)\n\thave(%v)", len(s.envs), len(actions))
	}

	steps := make([]timestep.TimeStep, len(s.envs))
	lasts := make([]bool, len(s.envs))
	for i, e := range s.envs {
		step, last, err := e.Step(actions[i])
		if err != nil {
			return nil, nil, fmt.Errorf("step: environment %v: %v", i, err)
		}
		steps[i] = step
		lasts[i] = last
	}
	return steps, lasts, nil
}

// ObservationSpec returns the observation specification of the wrapped
// instances
func (s *Sync) ObservationSpec() environment.Spec {
	return s.envs[0].ObservationSpec()
}

// ActionSpec returns the action specification of the wrapped instances
func (s *Sync) ActionSpec() environment.Spec {
	return s.envs[0].ActionSpec()
}
