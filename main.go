package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/golagom/agent/nonlinear/continuous/td3"
	"github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/environment/classiccontrol/pendulum"
	"github.com/samuelfneumann/golagom/environment/vector"
	"github.com/samuelfneumann/golagom/runner"
)

const (
	seed     uint64  = 24
	numEnvs  int     = 4
	discount float64 = 0.99

	episodeSteps int = 200 // Steps per episode
	iterations   int = 250 // Collect-then-learn iterations
)

// newSwingUp returns a new pendulum swing-up environment. The pendulum
// starts at a uniformly random angle with a small random velocity.
func newSwingUp(seed uint64) environment.Environment {
	bounds := []r1.Interval{
		{Min: -pendulum.AngleBound, Max: pendulum.AngleBound},
		{Min: -1.0, Max: 1.0},
	}
	starter := environment.NewUniformStarter(bounds, seed)
	task := pendulum.NewSwingUp(starter, episodeSteps)

	env, _ := pendulum.NewContinuous(task, discount)
	return env
}

// main trains a TD3 agent on the pendulum swing-up task, collecting a
// batch of episodes from vectorized environments between rounds of
// gradient updates
func main() {
	envs := make([]environment.Environment, numEnvs)
	for i := range envs {
		envs[i] = newSwingUp(seed + uint64(i))
	}
	vecEnv, err := vector.NewSync(envs)
	if err != nil {
		log.Fatalf("could not create vectorized environment: %v", err)
	}

	config, err := td3.DefaultConfig()
	if err != nil {
		log.Fatalf("could not create agent configuration: %v", err)
	}
	config.ExpReplay.MinReplayCapacity = 1000

	agent, err := td3.New(envs[0], config, seed)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}
	defer agent.Close()

	collector := runner.NewEpisodeRunner(vecEnv, agent, true)

	for iter := 0; iter < iterations; iter++ {
		batch, err := collector.Run(episodeSteps)
		if err != nil {
			log.Fatalf("could not collect episodes: %v", err)
		}
		if err := batch.Feed(agent); err != nil {
			log.Fatalf("could not store collected episodes: %v", err)
		}

		avgReturn := 0.0
		for _, ret := range batch.Returns() {
			avgReturn += ret / float64(batch.NumEnvs())
		}

		// Wait until the replay buffer holds enough transitions before
		// updating
		if agent.TotalSteps() < config.ExpReplay.MinReplayCapacity {
			fmt.Printf("iteration %v \taverage return: %.2f \t(filling "+
				"replay buffer)\n", iter, avgReturn)
			continue
		}

		result, err := agent.Learn(batch.TotalSteps())
		if err != nil {
			log.Fatalf("could not update agent: %v", err)
		}

		lastCriticLoss := result.CriticLoss[len(result.CriticLoss)-1]
		fmt.Printf("iteration %v \taverage return: %.2f \tcritic loss: "+
			"%.4f \tmean Q1: %.2f ± %.2f\n", iter, avgReturn,
			lastCriticLoss, result.MeanQ1, result.StdDevQ1)
	}

	if err := agent.Save("agent_final.bin"); err != nil {
		log.Fatalf("could not save agent: %v", err)
	}

	// Evaluate the deterministic policy
	agent.Eval()
	batch, err := collector.Run(episodeSteps)
	if err != nil {
		log.Fatalf("could not evaluate agent: %v", err)
	}
	fmt.Printf("evaluation returns: %v\n", batch.Returns())
}
