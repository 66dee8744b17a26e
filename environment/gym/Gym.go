// Package gym provides access to OpenAI Gym environments through the
// GoGym bindings found at https://github.com/samuelfneumann/GoGym.
//
// Environments in the Classic Control and MuJoCo suites can be used
// with their default tasks and episode cutoffs. Because the reward
// function, starting state distribution, and episode cutoffs live on
// the Python side, the Task methods Start, GetReward, End, and AtGoal
// panic if called.
package gym

import (
	"fmt"

	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/golagom/environment"
	ts "github.com/samuelfneumann/golagom/timestep"
)

// EnvironmentID names an OpenAI Gym environment
type EnvironmentID string

const (
	MountainCarContinuousV0 EnvironmentID = "MountainCarContinuous-v0"
	PendulumV0              EnvironmentID = "Pendulum-v0"
	HopperV2                EnvironmentID = "Hopper-v2"
	Walker2dV2              EnvironmentID = "Walker2d-v2"
	HalfCheetahV2           EnvironmentID = "HalfCheetah-v2"
)

// GymEnv implements access to an OpenAI Gym environment using GoGym.
// GymEnv implements the environment.Seeder interface.
type GymEnv struct {
	gogym.Environment

	envId       EnvironmentID
	currentStep ts.TimeStep
	discount    float64
}

// New returns a new GymEnv with the given ID, which must be a legal
// name from the OpenAI Gym suite.
func New(envId EnvironmentID, discount float64, seed uint64) (env.Seeder,
	ts.TimeStep, error) {
	goGymEnv, err := gogym.Make(string(envId))
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not create "+
			"environment: %v", err)
	}

	goGymEnv.Seed(int(seed))
	obs, err := goGymEnv.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not reset "+
			"environment: %v", err)
	}

	gymEnv := &GymEnv{
		Environment: goGymEnv,
		envId:       envId,
		discount:    discount,
	}

	t := ts.New(ts.First, 0, discount, obs, 0)
	gymEnv.currentStep = t

	return gymEnv, t, nil
}

// Step takes a single environmental step
func (g *GymEnv) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	obs, reward, done, err := g.Environment.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"GoGym environment: %v", err)
	}

	t := ts.New(ts.Mid, reward, g.discount, obs, g.currentStep.Number+1)
	if done {
		t.StepType = ts.Last
	}
	g.currentStep = t

	return t, done, nil
}

// Reset resets the environment to some starting state
func (g *GymEnv) Reset() ts.TimeStep {
	obs, err := g.Environment.Reset()
	if err != nil {
		panic(fmt.Sprintf("reset: could not reset GoGym environment: %v",
			err))
	}

	t := ts.New(ts.First, 0, g.discount, obs, 0)
	g.currentStep = t

	return t
}

// Seed reseeds the environment's randomness
func (g *GymEnv) Seed(seed uint64) error {
	g.Environment.Seed(int(seed))
	return nil
}

// CurrentTimeStep returns the current timestep in the environment
func (g *GymEnv) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// ObservationSpec returns the observation spec of the environment
func (g *GymEnv) ObservationSpec() env.Spec {
	return g.spaceSpec(g.ObservationSpace(), env.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *GymEnv) ActionSpec() env.Spec {
	return g.spaceSpec(g.ActionSpace(), env.Action)
}

// spaceSpec converts a GoGym space into an environment.Spec
func (g *GymEnv) spaceSpec(space gogym.Space, t env.SpecType) env.Spec {
	var low, high, shape *mat.VecDense
	switch space.(type) {
	case *gogym.BoxSpace, *gogym.DiscreteSpace:
		low = space.Low()[0]
		high = space.High()[0]
		shape = mat.NewVecDense(low.Len(), nil)
	default:
		panic("spaceSpec: invalid space type, package gym supports " +
			"only GoGym's BoxSpace or DiscreteSpace")
	}

	return env.NewSpec(shape, t, low, high, env.Continuous)
}

// DiscountSpec returns the discount specification of the environment
func (g *GymEnv) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// RewardSpec returns the reward specification of the environment
func (g *GymEnv) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// Min returns the minimum attainable single-step reward
func (g *GymEnv) Min() float64 {
	switch g.envId {
	case MountainCarContinuousV0:
		return -0.144
	case PendulumV0:
		return -16.2736044
	}
	// MuJoCo locomotion rewards are unbounded below
	return 0.0
}

// Max returns the maximum attainable single-step reward
func (g *GymEnv) Max() float64 {
	switch g.envId {
	case MountainCarContinuousV0:
		return 100.0
	case PendulumV0:
		return 0.0
	}
	return 0.0
}

// Start implements the environment.Environment interface. This
// function panics.
func (g *GymEnv) Start() mat.Vector {
	panic("start: cannot calculate starting state for GymEnv")
}

// GetReward implements the environment.Environment interface. This
// function panics.
func (g *GymEnv) GetReward(_, _, _ mat.Vector) float64 {
	panic("getReward: cannot calculate reward for transition in GymEnv")
}

// End implements the environment.Environment interface. This function
// panics.
func (g *GymEnv) End(*ts.TimeStep) bool {
	panic("end: cannot calculate ending for GymEnv")
}

// AtGoal implements the environment.Environment interface. This
// function panics.
func (g *GymEnv) AtGoal(mat.Matrix) bool {
	panic("atGoal: cannot calculate at goal for GymEnv")
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *GymEnv) Close() error {
	g.Environment.Close()
	return nil
}
