package expreplay

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/golagom/timestep"
)

// newTestTransition returns a transition whose state, action, and next
// state are filled with the argument value so that sampled batches can
// be traced back to the transitions they came from
func newTestTransition(val float64) ts.Transition {
	return ts.Transition{
		State:      mat.NewVecDense(2, []float64{val, val}),
		Action:     mat.NewVecDense(1, []float64{val}),
		Reward:     val,
		Discount:   0.99,
		NextState:  mat.NewVecDense(2, []float64{val + 1, val + 1}),
		NextAction: mat.NewVecDense(1, []float64{val}),
	}
}

func newFifoBuffer(t *testing.T, batchSize, minCap,
	maxCap int) ExperienceReplayer {
	buffer, err := New(NewFifoSelector(batchSize), minCap, maxCap, 2, 1)
	if err != nil {
		t.Fatalf("could not create replay buffer: %v", err)
	}
	return buffer
}

func TestSampleEmptyBuffer(t *testing.T) {
	buffer := newFifoBuffer(t, 1, 1, 3)

	_, _, _, _, _, err := buffer.Sample()
	if !IsEmptyBuffer(err) {
		t.Errorf("expected empty buffer error \n\thave(%v)", err)
	}
}

func TestSampleInsufficientSamples(t *testing.T) {
	buffer := newFifoBuffer(t, 2, 2, 4)

	if err := buffer.Add(newTestTransition(1.0)); err != nil {
		t.Fatalf("could not add transition: %v", err)
	}

	_, _, _, _, _, err := buffer.Sample()
	if !IsInsufficientSamples(err) {
		t.Errorf("expected insufficient samples error \n\thave(%v)", err)
	}
}

func TestFifoSampleOrder(t *testing.T) {
	buffer := newFifoBuffer(t, 2, 2, 3)

	for i := 1; i <= 3; i++ {
		if err := buffer.Add(newTestTransition(float64(i))); err != nil {
			t.Fatalf("could not add transition: %v", err)
		}
	}

	state, action, reward, discount, nextState, err := buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample from buffer: %v", err)
	}

	// The oldest two transitions should be returned in insertion order
	wantStates := []float64{1, 1, 2, 2}
	for i := range wantStates {
		if state[i] != wantStates[i] {
			t.Errorf("incorrect state batch \n\twant(%v)\n\thave(%v)",
				wantStates, state)
			break
		}
	}
	if action[0] != 1 || action[1] != 2 {
		t.Errorf("incorrect action batch \n\twant(%v)\n\thave(%v)",
			[]float64{1, 2}, action)
	}
	if reward[0] != 1 || reward[1] != 2 {
		t.Errorf("incorrect reward batch \n\twant(%v)\n\thave(%v)",
			[]float64{1, 2}, reward)
	}
	if discount[0] != 0.99 || discount[1] != 0.99 {
		t.Errorf("incorrect discount batch \n\thave(%v)", discount)
	}
	if nextState[0] != 2 || nextState[2] != 3 {
		t.Errorf("incorrect next state batch \n\thave(%v)", nextState)
	}
}

func TestOverwriteOldest(t *testing.T) {
	buffer := newFifoBuffer(t, 2, 2, 3)

	// Adding a fourth transition to a buffer of capacity 3 overwrites
	// the first
	for i := 1; i <= 4; i++ {
		if err := buffer.Add(newTestTransition(float64(i))); err != nil {
			t.Fatalf("could not add transition: %v", err)
		}
	}
	if buffer.Capacity() != 3 {
		t.Fatalf("incorrect buffer capacity \n\twant(%v)\n\thave(%v)", 3,
			buffer.Capacity())
	}

	_, action, _, _, _, err := buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample from buffer: %v", err)
	}
	if action[0] != 2 || action[1] != 3 {
		t.Errorf("oldest transition not overwritten \n\twant(%v)"+
			"\n\thave(%v)", []float64{2, 3}, action)
	}
}

func TestUniformSampleShape(t *testing.T) {
	buffer, err := New(NewUniformSelector(4, 13), 2, 10, 2, 1)
	if err != nil {
		t.Fatalf("could not create replay buffer: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if err := buffer.Add(newTestTransition(float64(i))); err != nil {
			t.Fatalf("could not add transition: %v", err)
		}
	}

	state, action, reward, discount, nextState, err := buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample from buffer: %v", err)
	}

	if len(state) != 8 || len(nextState) != 8 {
		t.Errorf("incorrect state batch size \n\twant(%v)\n\thave(%v, %v)",
			8, len(state), len(nextState))
	}
	if len(action) != 4 || len(reward) != 4 || len(discount) != 4 {
		t.Errorf("incorrect batch size \n\twant(%v)\n\thave(%v, %v, %v)",
			4, len(action), len(reward), len(discount))
	}

	// Sampled values can only come from stored transitions
	for i := range action {
		if action[i] < 1 || action[i] > 5 {
			t.Errorf("sampled action not in buffer \n\thave(%v)", action[i])
		}
	}
}

func TestAddInvalidSizes(t *testing.T) {
	buffer := newFifoBuffer(t, 1, 1, 3)

	transition := newTestTransition(1.0)
	transition.State = mat.NewVecDense(3, nil)
	transition.NextState = mat.NewVecDense(3, nil)
	if err := buffer.Add(transition); err == nil {
		t.Error("expected error when adding transition with invalid " +
			"feature size")
	}

	transition = newTestTransition(1.0)
	transition.Action = mat.NewVecDense(2, nil)
	if err := buffer.Add(transition); err == nil {
		t.Error("expected error when adding transition with invalid " +
			"action size")
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	if _, err := New(NewFifoSelector(2), 0, 3, 2, 1); err == nil {
		t.Error("expected error when minimum capacity is 0")
	}
	if _, err := New(NewFifoSelector(4), 4, 3, 2, 1); err == nil {
		t.Error("expected error when batch size exceeds maximum capacity")
	}
	if _, err := New(NewFifoSelector(4), 2, 10, 2, 1); err == nil {
		t.Error("expected error when batch size exceeds minimum capacity")
	}
}
