// Package runner implements rollout collection for agents acting in
// vectorized environments
package runner

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golagom/agent"
	ts "github.com/samuelfneumann/golagom/timestep"
)

// BatchEpisodes stores one episode trajectory per environment instance
// of a vectorized environment. Each trajectory holds the first
// timestep of the episode followed by the action taken at each step
// and the timestep it led to. A trajectory stops growing once its
// episode completes.
type BatchEpisodes struct {
	first     []ts.TimeStep
	steps     [][]ts.TimeStep
	actions   [][]*mat.VecDense
	completed []bool
}

// NewBatchEpisodes returns a new BatchEpisodes holding n empty
// trajectories
func NewBatchEpisodes(n int) *BatchEpisodes {
	return &BatchEpisodes{
		first:     make([]ts.TimeStep, n),
		steps:     make([][]ts.TimeStep, n),
		actions:   make([][]*mat.VecDense, n),
		completed: make([]bool, n),
	}
}

// ObserveFirst records the first timestep of trajectory i
func (b *BatchEpisodes) ObserveFirst(i int, step ts.TimeStep) {
	b.first[i] = step
}

// Observe records that taking the argument action in trajectory i led
// to the argument timestep. Completed trajectories ignore further
// observations.
func (b *BatchEpisodes) Observe(i int, action *mat.VecDense,
	step ts.TimeStep) {
	if b.completed[i] {
		return
	}
	b.actions[i] = append(b.actions[i], action)
	b.steps[i] = append(b.steps[i], step)
}

// SetCompleted marks trajectory i as completed
func (b *BatchEpisodes) SetCompleted(i int) {
	b.completed[i] = true
}

// Completed returns whether trajectory i has completed
func (b *BatchEpisodes) Completed(i int) bool {
	return b.completed[i]
}

// AllCompleted returns whether every trajectory has completed
func (b *BatchEpisodes) AllCompleted() bool {
	for _, completed := range b.completed {
		if !completed {
			return false
		}
	}
	return true
}

// NumEnvs returns the number of trajectories
func (b *BatchEpisodes) NumEnvs() int {
	return len(b.steps)
}

// Len returns the number of transitions recorded in trajectory i
func (b *BatchEpisodes) Len(i int) int {
	return len(b.steps[i])
}

// TotalSteps returns the total number of transitions recorded over all
// trajectories
func (b *BatchEpisodes) TotalSteps() int {
	total := 0
	for i := range b.steps {
		total += len(b.steps[i])
	}
	return total
}

// Return returns the undiscounted cumulative reward of trajectory i
func (b *BatchEpisodes) Return(i int) float64 {
	total := 0.0
	for _, step := range b.steps[i] {
		total += step.Reward
	}
	return total
}

// Returns returns the undiscounted cumulative reward of each trajectory
func (b *BatchEpisodes) Returns() []float64 {
	returns := make([]float64, b.NumEnvs())
	for i := range returns {
		returns[i] = b.Return(i)
	}
	return returns
}

// Observations returns the observations of trajectory i, starting with
// the observation of the first timestep of the episode
func (b *BatchEpisodes) Observations(i int) []mat.Vector {
	observations := make([]mat.Vector, 0, len(b.steps[i])+1)
	observations = append(observations, b.first[i].Observation)
	for _, step := range b.steps[i] {
		observations = append(observations, step.Observation)
	}
	return observations
}

// Actions returns the actions taken in trajectory i
func (b *BatchEpisodes) Actions(i int) []*mat.VecDense {
	return b.actions[i]
}

// Rewards returns the rewards of trajectory i
func (b *BatchEpisodes) Rewards(i int) []float64 {
	rewards := make([]float64, len(b.steps[i]))
	for j, step := range b.steps[i] {
		rewards[j] = step.Reward
	}
	return rewards
}

// Feed replays the recorded trajectories through a Learner, one
// trajectory at a time, so that the Learner observes each episode as
// if it had generated the episode itself
func (b *BatchEpisodes) Feed(l agent.Learner) error {
	for i := range b.steps {
		if err := l.ObserveFirst(b.first[i]); err != nil {
			return fmt.Errorf("feed: could not observe first timestep of "+
				"trajectory %v: %v", i, err)
		}
		for j := range b.steps[i] {
			if err := l.Observe(b.actions[i][j], b.steps[i][j]); err != nil {
				return fmt.Errorf("feed: could not observe timestep %v of "+
					"trajectory %v: %v", j, i, err)
			}
		}
		l.EndEpisode()
	}
	return nil
}
