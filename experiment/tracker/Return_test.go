package tracker

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/golagom/timestep"
)

// trackEpisode tracks an episode of the argument length where every
// step has a reward of 1
func trackEpisode(tracker Tracker, length int) {
	obs := mat.NewVecDense(1, nil)
	tracker.Track(ts.New(ts.First, 0.0, 0.99, obs, 0))
	for i := 1; i < length; i++ {
		tracker.Track(ts.New(ts.Mid, 1.0, 0.99, obs, i))
	}
	tracker.Track(ts.New(ts.Last, 1.0, 0.99, obs, length))
}

func TestReturnTracksEpisodicReturns(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "data.bin")
	tracker := NewReturn(filename)

	trackEpisode(tracker, 3)
	trackEpisode(tracker, 5)
	tracker.Save()

	returns := LoadData(filename)
	if len(returns) != 2 {
		t.Fatalf("incorrect number of episodic returns \n\twant(%v)"+
			"\n\thave(%v)", 2, len(returns))
	}
	if returns[0] != 3.0 || returns[1] != 5.0 {
		t.Errorf("incorrect episodic returns \n\twant(%v, %v)\n\thave(%v, "+
			"%v)", 3.0, 5.0, returns[0], returns[1])
	}
}

func TestReturnPanicsOnNonSequentialTimesteps(t *testing.T) {
	tracker := NewReturn(filepath.Join(t.TempDir(), "data.bin"))
	obs := mat.NewVecDense(1, nil)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when tracking non-sequential timesteps")
		}
	}()
	tracker.Track(ts.New(ts.Mid, 1.0, 0.99, obs, 5))
}

func TestEpisodeLengthTracksCompletedEpisodes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	tracker := NewEpisodeLength(filename)

	trackEpisode(tracker, 3)
	trackEpisode(tracker, 7)
	tracker.Save()

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var lengths []int
	if err := gob.NewDecoder(file).Decode(&lengths); err != nil {
		t.Fatalf("could not decode episode lengths: %v", err)
	}
	if len(lengths) != 2 || lengths[0] != 3 || lengths[1] != 7 {
		t.Errorf("incorrect episode lengths \n\twant(%v)\n\thave(%v)",
			[]int{3, 7}, lengths)
	}
}
