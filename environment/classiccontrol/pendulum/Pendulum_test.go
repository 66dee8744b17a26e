package pendulum

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// fixedStarter always starts episodes in the same state
type fixedStarter struct {
	state []float64
}

func (f fixedStarter) Start() mat.Vector {
	return mat.NewVecDense(len(f.state), f.state)
}

func newFixedSwingUp(t *testing.T, state []float64,
	maxSteps int) *Continuous {
	task := NewSwingUp(fixedStarter{state}, maxSteps)
	env, firstStep := NewContinuous(task, 0.99)

	if !firstStep.First() {
		t.Fatal("environment did not start on the first timestep")
	}
	return env
}

func TestSwingUpReward(t *testing.T) {
	// The pendulum hangs straight down with no velocity, so zero torque
	// keeps it at the bottom where the reward is cos(±π) = -1
	env := newFixedSwingUp(t, []float64{math.Pi, 0.0}, 10)

	step, last, err := env.Step(mat.NewVecDense(1, nil))
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if last {
		t.Fatal("episode ended on the first step")
	}
	if step.Reward != -1.0 {
		t.Errorf("incorrect reward at the bottom \n\twant(%v)\n\thave(%v)",
			-1.0, step.Reward)
	}
	if step.Discount != 0.99 {
		t.Errorf("incorrect discount \n\twant(%v)\n\thave(%v)", 0.99,
			step.Discount)
	}
}

func TestContinuousClipsTorque(t *testing.T) {
	// Actions outside the torque bounds should behave exactly like the
	// bounded torque
	clipped := newFixedSwingUp(t, []float64{math.Pi, 0.0}, 10)
	bounded := newFixedSwingUp(t, []float64{math.Pi, 0.0}, 10)

	clippedStep, _, err := clipped.Step(mat.NewVecDense(1,
		[]float64{100.0}))
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	boundedStep, _, err := bounded.Step(mat.NewVecDense(1,
		[]float64{TorqueBound}))
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}

	for i := 0; i < ObservationDims; i++ {
		if clippedStep.Observation.AtVec(i) !=
			boundedStep.Observation.AtVec(i) {
			t.Errorf("out-of-bounds torque not clipped \n\twant(%v)"+
				"\n\thave(%v)", boundedStep.Observation.AtVec(i),
				clippedStep.Observation.AtVec(i))
		}
	}
}

func TestStepLimitEndsEpisode(t *testing.T) {
	env := newFixedSwingUp(t, []float64{math.Pi, 0.0}, 3)
	action := mat.NewVecDense(1, nil)

	for i := 1; i <= 2; i++ {
		step, last, err := env.Step(action)
		if err != nil {
			t.Fatalf("could not step environment: %v", err)
		}
		if last || step.Last() {
			t.Fatalf("episode ended before the step limit at step %v", i)
		}
	}

	step, last, err := env.Step(action)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if !last || !step.Last() {
		t.Error("episode did not end at the step limit")
	}

	// Resetting starts a fresh episode
	step = env.Reset()
	if !step.First() || step.Number != 0 {
		t.Error("environment not reset to the first timestep")
	}
}

func TestContinuousInvalidAction(t *testing.T) {
	env := newFixedSwingUp(t, []float64{math.Pi, 0.0}, 10)

	if _, _, err := env.Step(mat.NewVecDense(2, nil)); err == nil {
		t.Error("expected error with an action of invalid dimensions")
	}
}
