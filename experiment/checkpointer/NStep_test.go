package checkpointer

import (
	"testing"

	ts "github.com/samuelfneumann/golagom/timestep"
)

// fakeSerializable records the filenames it was asked to save to
type fakeSerializable struct {
	saves []string
}

func (f *fakeSerializable) Save(path string) error {
	f.saves = append(f.saves, path)
	return nil
}

func TestNStepCheckpointsAtIntervals(t *testing.T) {
	object := &fakeSerializable{}
	checkpointer := NewNStep(3, object, FilenameEnumerator(0, "agent", ".bin"))

	for i := 0; i < 7; i++ {
		if err := checkpointer.Checkpoint(ts.TimeStep{}); err != nil {
			t.Fatalf("could not checkpoint: %v", err)
		}
	}

	// Seven steps with an interval of three should checkpoint twice
	if len(object.saves) != 2 {
		t.Fatalf("incorrect number of checkpoints \n\twant(%v)\n\thave(%v)",
			2, len(object.saves))
	}
	if object.saves[0] != "agent1.bin" || object.saves[1] != "agent2.bin" {
		t.Errorf("incorrect checkpoint filenames \n\twant(%v, %v)"+
			"\n\thave(%v, %v)", "agent1.bin", "agent2.bin", object.saves[0],
			object.saves[1])
	}
}
