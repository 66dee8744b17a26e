package td3

import (
	"fmt"

	"github.com/samuelfneumann/golagom/agent"
	env "github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/expreplay"
	"github.com/samuelfneumann/golagom/initwfn"
	"github.com/samuelfneumann/golagom/network"
	"github.com/samuelfneumann/golagom/solver"
)

// Config implements a configuration for a TD3 agent
type Config struct {
	// Actor network architecture
	PolicyLayers      []int
	PolicyBiases      []bool
	PolicyActivations []*network.Activation

	// Twin critic architecture. Both critics share this architecture
	// but not their weights.
	CriticLayers      []int
	CriticBiases      []bool
	CriticActivations []*network.Activation

	ActorSolver  *solver.Solver // Adapts the actor weights
	CriticSolver *solver.Solver // Adapts the twin critic weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	// Experience replay parameters
	ExpReplay expreplay.Config

	// ExplorationNoise is the standard deviation of the Gaussian noise
	// added to actions selected during training
	ExplorationNoise float64

	// TargetNoise is the standard deviation of the smoothing noise
	// added to target policy actions when computing the critic update
	// target. Each noise sample is clipped to stay within
	// ±TargetNoiseClip before being added to the target action.
	TargetNoise     float64
	TargetNoiseClip float64

	// Polyak is the proportion of the target network weights retained
	// on each target network update:
	//
	//	target <- Polyak * target + (1 - Polyak) * online
	Polyak float64

	// PolicyDelay is the number of critic updates to perform per actor
	// and target network update
	PolicyDelay int

	// MaxGradNorm rescales gradients so that their global norm never
	// exceeds this value. Values <= 0 disable rescaling.
	MaxGradNorm float64
}

// DefaultConfig returns a Config with the hyperparameter settings
// commonly used on classic control tasks
func DefaultConfig() (Config, error) {
	actorSolver, err := solver.NewDefaultAdam(0.001, 100)
	if err != nil {
		return Config{}, fmt.Errorf("defaultconfig: %v", err)
	}
	criticSolver, err := solver.NewDefaultAdam(0.001, 100)
	if err != nil {
		return Config{}, fmt.Errorf("defaultconfig: %v", err)
	}
	init, err := initwfn.NewGlorotU(1.0)
	if err != nil {
		return Config{}, fmt.Errorf("defaultconfig: %v", err)
	}

	return Config{
		PolicyLayers: []int{400, 300},
		PolicyBiases: []bool{true, true},
		PolicyActivations: []*network.Activation{
			network.ReLU(),
			network.ReLU(),
		},

		CriticLayers: []int{400, 300},
		CriticBiases: []bool{true, true},
		CriticActivations: []*network.Activation{
			network.ReLU(),
			network.ReLU(),
		},

		ActorSolver:  actorSolver,
		CriticSolver: criticSolver,
		InitWFn:      init,

		ExpReplay: expreplay.Config{
			SampleMethod:      expreplay.Uniform,
			SampleSize:        100,
			MaxReplayCapacity: 1000000,
			MinReplayCapacity: 1000,
		},

		ExplorationNoise: 0.1,
		TargetNoise:      0.2,
		TargetNoiseClip:  0.5,
		Polyak:           0.995,
		PolicyDelay:      2,
		MaxGradNorm:      -1.0,
	}, nil
}

// BatchSize returns the batch size of the agent constructed using this
// Config
func (c Config) BatchSize() int {
	return c.ExpReplay.SampleSize
}

// Validate checks a Config to ensure it is a valid configuration of a
// TD3 agent.
func (c Config) Validate() error {
	if len(c.PolicyLayers) != len(c.PolicyBiases) {
		return fmt.Errorf("validate: invalid number of policy biases"+
			"\n\twant(%v)\n\thave(%v)", len(c.PolicyLayers),
			len(c.PolicyBiases))
	}
	if len(c.PolicyLayers) != len(c.PolicyActivations) {
		return fmt.Errorf("validate: invalid number of policy activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.PolicyLayers),
			len(c.PolicyActivations))
	}

	if len(c.CriticLayers) != len(c.CriticBiases) {
		return fmt.Errorf("validate: invalid number of critic biases"+
			"\n\twant(%v)\n\thave(%v)", len(c.CriticLayers),
			len(c.CriticBiases))
	}
	if len(c.CriticLayers) != len(c.CriticActivations) {
		return fmt.Errorf("validate: invalid number of critic activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.CriticLayers),
			len(c.CriticActivations))
	}

	if c.ActorSolver == nil || c.CriticSolver == nil {
		return fmt.Errorf("validate: no solver given")
	}
	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer given")
	}

	if c.ExplorationNoise < 0 {
		return fmt.Errorf("validate: exploration noise must be "+
			"non-negative \n\thave(%v)", c.ExplorationNoise)
	}
	if c.TargetNoise < 0 {
		return fmt.Errorf("validate: target noise must be non-negative"+
			" \n\thave(%v)", c.TargetNoise)
	}
	if c.TargetNoiseClip < 0 {
		return fmt.Errorf("validate: target noise clip must be "+
			"non-negative \n\thave(%v)", c.TargetNoiseClip)
	}

	if c.Polyak < 0 || c.Polyak >= 1 {
		return fmt.Errorf("validate: polyak averaging constant must be "+
			"in [0, 1) \n\thave(%v)", c.Polyak)
	}
	if c.PolicyDelay < 1 {
		return fmt.Errorf("validate: actor updates must happen at "+
			"positive critic update intervals \n\twant(>0) \n\thave(%v)",
			c.PolicyDelay)
	}

	if c.BatchSize() < 1 {
		return fmt.Errorf("validate: replay sample size must be positive"+
			" \n\thave(%v)", c.BatchSize())
	}

	return nil
}

// ValidAgent returns whether the agent is valid for the configuration.
// That is, whether Agent a can be constructed with Config c.
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*TD3)
	return ok
}

// CreateAgent creates a new TD3 agent based on the configuration
func (c Config) CreateAgent(e env.Environment, seed uint64) (agent.Agent,
	error) {
	return New(e, c, seed)
}
