package runner

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/environment/vector"
	ts "github.com/samuelfneumann/golagom/timestep"
)

// fakeEnv is a deterministic environment whose episodes end after a
// fixed number of steps. Every step gives a reward of 1. An episodeLen
// of 0 or less creates episodes that never end.
type fakeEnv struct {
	episodeLen int
	number     int
}

func (f *fakeEnv) Start() mat.Vector {
	return mat.NewVecDense(1, nil)
}

func (f *fakeEnv) End(t *ts.TimeStep) bool {
	if f.episodeLen > 0 && t.Number >= f.episodeLen {
		t.StepType = ts.Last
		return true
	}
	return false
}

func (f *fakeEnv) GetReward(_, _, _ mat.Vector) float64 { return 1.0 }
func (f *fakeEnv) AtGoal(mat.Matrix) bool               { return false }
func (f *fakeEnv) Min() float64                         { return 1.0 }
func (f *fakeEnv) Max() float64                         { return 1.0 }

func (f *fakeEnv) Reset() ts.TimeStep {
	f.number = 0
	return ts.New(ts.First, 0.0, 1.0, f.Start(), 0)
}

func (f *fakeEnv) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	f.number++
	obs := mat.NewVecDense(1, []float64{float64(f.number)})
	step := ts.New(ts.Mid, 1.0, 1.0, obs, f.number)
	last := f.End(&step)
	return step, last, nil
}

func (f *fakeEnv) spec(t environment.SpecType) environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{-1.0})
	upperBound := mat.NewVecDense(1, []float64{1.0})
	return environment.NewSpec(shape, t, lowerBound, upperBound,
		environment.Continuous)
}

func (f *fakeEnv) RewardSpec() environment.Spec {
	return f.spec(environment.Reward)
}

func (f *fakeEnv) DiscountSpec() environment.Spec {
	return f.spec(environment.Discount)
}

func (f *fakeEnv) ObservationSpec() environment.Spec {
	return f.spec(environment.Observation)
}

func (f *fakeEnv) ActionSpec() environment.Spec {
	return f.spec(environment.Action)
}

// fakePolicy always selects the zero action
type fakePolicy struct {
	eval bool
}

func (f *fakePolicy) SelectAction(ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, nil)
}

func (f *fakePolicy) Eval()        { f.eval = true }
func (f *fakePolicy) Train()       { f.eval = false }
func (f *fakePolicy) IsEval() bool { return f.eval }

// fakeLearner counts the observations fed to it
type fakeLearner struct {
	firsts   int
	observes int
	episodes int
}

func (f *fakeLearner) Step() error { return nil }

func (f *fakeLearner) Observe(mat.Vector, ts.TimeStep) error {
	f.observes++
	return nil
}

func (f *fakeLearner) ObserveFirst(ts.TimeStep) error {
	f.firsts++
	return nil
}

func (f *fakeLearner) EndEpisode() {
	f.episodes++
}

func newFakeSync(t *testing.T, episodeLens ...int) *vector.Sync {
	envs := make([]environment.Environment, len(episodeLens))
	for i, episodeLen := range episodeLens {
		envs[i] = &fakeEnv{episodeLen: episodeLen}
	}

	sync, err := vector.NewSync(envs)
	if err != nil {
		t.Fatalf("could not create vectorized environment: %v", err)
	}
	return sync
}

func TestRunInvalidMaxSteps(t *testing.T) {
	runner := NewEpisodeRunner(newFakeSync(t, 3), &fakePolicy{}, false)
	if _, err := runner.Run(0); err == nil {
		t.Error("expected error with non-positive maxSteps")
	}
}

func TestRunCollectsCompleteEpisodes(t *testing.T) {
	runner := NewEpisodeRunner(newFakeSync(t, 3, 3), &fakePolicy{}, false)

	batch, err := runner.Run(5)
	if err != nil {
		t.Fatalf("could not collect episodes: %v", err)
	}

	if !batch.AllCompleted() {
		t.Error("all episodes should have completed")
	}
	for i := 0; i < batch.NumEnvs(); i++ {
		if batch.Len(i) != 3 {
			t.Errorf("incorrect trajectory length for environment %v "+
				"\n\twant(%v)\n\thave(%v)", i, 3, batch.Len(i))
		}
		if batch.Return(i) != 3.0 {
			t.Errorf("incorrect return for environment %v \n\twant(%v)"+
				"\n\thave(%v)", i, 3.0, batch.Return(i))
		}
		if len(batch.Observations(i)) != 4 {
			t.Errorf("incorrect number of observations for environment %v "+
				"\n\twant(%v)\n\thave(%v)", i, 4, len(batch.Observations(i)))
		}
	}
	if batch.TotalSteps() != 6 {
		t.Errorf("incorrect total steps \n\twant(%v)\n\thave(%v)", 6,
			batch.TotalSteps())
	}
}

func TestRunTruncatesUnfinishedEpisodes(t *testing.T) {
	runner := NewEpisodeRunner(newFakeSync(t, 0), &fakePolicy{}, false)

	batch, err := runner.Run(5)
	if err != nil {
		t.Fatalf("could not collect episodes: %v", err)
	}

	if batch.Completed(0) {
		t.Error("never-ending episode marked as completed")
	}
	if batch.Len(0) != 5 {
		t.Errorf("incorrect truncated trajectory length \n\twant(%v)"+
			"\n\thave(%v)", 5, batch.Len(0))
	}
}

func TestRunStopsRecordingCompletedEpisodes(t *testing.T) {
	runner := NewEpisodeRunner(newFakeSync(t, 2, 4), &fakePolicy{}, false)

	batch, err := runner.Run(10)
	if err != nil {
		t.Fatalf("could not collect episodes: %v", err)
	}

	if batch.Len(0) != 2 || batch.Len(1) != 4 {
		t.Errorf("incorrect trajectory lengths \n\twant(%v, %v)"+
			"\n\thave(%v, %v)", 2, 4, batch.Len(0), batch.Len(1))
	}
	if !batch.AllCompleted() {
		t.Error("all episodes should have completed")
	}
}

func TestFeedReplaysTrajectories(t *testing.T) {
	runner := NewEpisodeRunner(newFakeSync(t, 3, 5), &fakePolicy{}, false)

	batch, err := runner.Run(10)
	if err != nil {
		t.Fatalf("could not collect episodes: %v", err)
	}

	learner := &fakeLearner{}
	if err := batch.Feed(learner); err != nil {
		t.Fatalf("could not feed episodes to learner: %v", err)
	}

	if learner.firsts != batch.NumEnvs() {
		t.Errorf("incorrect number of first timesteps fed \n\twant(%v)"+
			"\n\thave(%v)", batch.NumEnvs(), learner.firsts)
	}
	if learner.observes != batch.TotalSteps() {
		t.Errorf("incorrect number of timesteps fed \n\twant(%v)"+
			"\n\thave(%v)", batch.TotalSteps(), learner.observes)
	}
	if learner.episodes != batch.NumEnvs() {
		t.Errorf("incorrect number of episode ends \n\twant(%v)"+
			"\n\thave(%v)", batch.NumEnvs(), learner.episodes)
	}
}
