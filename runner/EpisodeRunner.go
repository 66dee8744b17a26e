package runner

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golagom/agent"
	"github.com/samuelfneumann/golagom/environment/vector"
	ts "github.com/samuelfneumann/golagom/timestep"
	"github.com/samuelfneumann/golagom/utils/progressbar"
)

const progressBarWidth int = 25

// EpisodeRunner rolls out one episode per environment instance of a
// vectorized environment using the actions of a single agent policy
type EpisodeRunner struct {
	envs  *vector.Sync
	agent agent.Policy

	// Whether a progress bar is drawn while collecting
	showProgress bool
}

// NewEpisodeRunner returns a new EpisodeRunner that collects episodes
// from the argument vectorized environment using the argument policy
func NewEpisodeRunner(envs *vector.Sync, p agent.Policy,
	showProgress bool) *EpisodeRunner {
	return &EpisodeRunner{
		envs:         envs,
		agent:        p,
		showProgress: showProgress,
	}
}

// Run resets every environment instance and collects one episode from
// each, for at most maxSteps steps per episode. Collection stops early
// once every episode has completed. Episodes that do not complete
// within maxSteps are returned truncated.
func (r *EpisodeRunner) Run(maxSteps int) (*BatchEpisodes, error) {
	if maxSteps < 1 {
		return nil, fmt.Errorf("run: maxSteps must be positive "+
			"\n\thave(%v)", maxSteps)
	}

	numEnvs := r.envs.Len()
	batch := NewBatchEpisodes(numEnvs)

	current := r.envs.Reset()
	for i, step := range current {
		batch.ObserveFirst(i, step)
	}

	var bar *progressbar.ProgressBar
	if r.showProgress {
		bar = progressbar.New(progressBarWidth, maxSteps)
		bar.Display()
	}

	for t := 0; t < maxSteps; t++ {
		actions := r.selectActions(current)

		next, lasts, err := r.envs.Step(actions)
		if err != nil {
			return nil, fmt.Errorf("run: could not step environments: %v",
				err)
		}

		for i := range next {
			if batch.Completed(i) {
				continue
			}
			batch.Observe(i, actions[i], next[i])
			if lasts[i] {
				batch.SetCompleted(i)
			}
		}
		current = next

		if bar != nil {
			bar.Increment()
			bar.Display()
		}

		if batch.AllCompleted() {
			break
		}
	}
	if bar != nil {
		fmt.Println()
	}

	return batch, nil
}

// selectActions selects one action per environment instance at the
// argument timesteps
func (r *EpisodeRunner) selectActions(steps []ts.TimeStep) []*mat.VecDense {
	actions := make([]*mat.VecDense, len(steps))
	for i, step := range steps {
		actions[i] = r.agent.SelectAction(step)
	}
	return actions
}
