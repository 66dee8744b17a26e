package vector

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/environment/classiccontrol/pendulum"
)

func newPendulums(t *testing.T, n int) []environment.Environment {
	envs := make([]environment.Environment, n)
	for i := range envs {
		bounds := []r1.Interval{
			{Min: -pendulum.AngleBound, Max: pendulum.AngleBound},
			{Min: -1.0, Max: 1.0},
		}
		starter := environment.NewUniformStarter(bounds, uint64(i+1))
		task := pendulum.NewSwingUp(starter, 10)
		envs[i], _ = pendulum.NewContinuous(task, 0.99)
	}
	return envs
}

func TestNewSyncRequiresEnvironments(t *testing.T) {
	if _, err := NewSync(nil); err == nil {
		t.Error("expected error with no environments")
	}
}

func TestSyncResetAndStep(t *testing.T) {
	sync, err := NewSync(newPendulums(t, 3))
	if err != nil {
		t.Fatalf("could not create vectorized environment: %v", err)
	}
	if sync.Len() != 3 {
		t.Fatalf("incorrect number of environments \n\twant(%v)\n\thave(%v)",
			3, sync.Len())
	}

	steps := sync.Reset()
	if len(steps) != 3 {
		t.Fatalf("incorrect number of first timesteps \n\twant(%v)"+
			"\n\thave(%v)", 3, len(steps))
	}
	for i, step := range steps {
		if !step.First() {
			t.Errorf("environment %v did not reset to the first timestep", i)
		}
	}

	actions := make([]*mat.VecDense, 3)
	for i := range actions {
		actions[i] = mat.NewVecDense(1, nil)
	}
	next, lasts, err := sync.Step(actions)
	if err != nil {
		t.Fatalf("could not step environments: %v", err)
	}
	if len(next) != 3 || len(lasts) != 3 {
		t.Fatalf("incorrect number of timesteps \n\twant(%v)\n\thave(%v, "+
			"%v)", 3, len(next), len(lasts))
	}
	for i, step := range next {
		if step.Number != 1 {
			t.Errorf("environment %v did not step \n\twant(%v)\n\thave(%v)",
				i, 1, step.Number)
		}
	}
}

func TestSyncStepInvalidActionCount(t *testing.T) {
	sync, err := NewSync(newPendulums(t, 2))
	if err != nil {
		t.Fatalf("could not create vectorized environment: %v", err)
	}
	sync.Reset()

	actions := []*mat.VecDense{mat.NewVecDense(1, nil)}
	if _, _, err := sync.Step(actions); err == nil {
		t.Error("expected error with an incorrect number of actions")
	}
}
