package network

import (
	"math"
	"testing"

	G "gorgonia.org/gorgonia"
)

const testMaxAction float64 = 2.0

func newTestActor(t *testing.T, batch int) NeuralNet {
	g := G.NewGraph()
	net, err := NewActorMLP(3, batch, 2, g, []int{16}, []bool{true},
		G.GlorotU(1.0), []*Activation{ReLU()}, testMaxAction)
	if err != nil {
		t.Fatalf("could not create actor: %v", err)
	}
	return net
}

// runNet runs a network's forward pass on the argument input and
// returns a copy of the first output head
func runNet(t *testing.T, net NeuralNet, vm G.VM, input []float64) []float64 {
	if err := net.SetInput(input); err != nil {
		t.Fatalf("could not set input: %v", err)
	}
	if err := vm.RunAll(); err != nil {
		t.Fatalf("could not run network: %v", err)
	}

	data := net.Output()[0].Data().([]float64)
	out := make([]float64, len(data))
	copy(out, data)
	vm.Reset()

	return out
}

func TestActorMLPBounds(t *testing.T) {
	net := newTestActor(t, 2)
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()

	input := []float64{0.1, -0.5, 1.2, 0.7, 0.0, -1.0}
	out := runNet(t, net, vm, input)

	if len(out) != 4 {
		t.Fatalf("invalid number of predicted actions \n\twant(%v)"+
			"\n\thave(%v)", 4, len(out))
	}
	for i, action := range out {
		if math.Abs(action) > testMaxAction {
			t.Errorf("action %v outside action bounds \n\twant(±%v)"+
				"\n\thave(%v)", i, testMaxAction, action)
		}
	}
}

func TestActorMLPDeterministic(t *testing.T) {
	net := newTestActor(t, 1)
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()

	input := []float64{0.3, -0.2, 0.9}
	first := runNet(t, net, vm, input)
	second := runNet(t, net, vm, input)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("actions differ between runs on the same input "+
				"\n\twant(%v)\n\thave(%v)", first[i], second[i])
		}
	}
}

func TestActorMLPClonePreservesWeights(t *testing.T) {
	net := newTestActor(t, 1)
	cloned, err := net.Clone()
	if err != nil {
		t.Fatalf("could not clone actor: %v", err)
	}

	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	cloneVM := G.NewTapeMachine(cloned.Graph())
	defer cloneVM.Close()

	input := []float64{-0.7, 0.4, 0.1}
	out := runNet(t, net, vm, input)
	cloneOut := runNet(t, cloned, cloneVM, input)

	for i := range out {
		if out[i] != cloneOut[i] {
			t.Errorf("cloned actor predicts different actions "+
				"\n\twant(%v)\n\thave(%v)", out[i], cloneOut[i])
		}
	}
}

func TestActorMLPInvalidInput(t *testing.T) {
	net := newTestActor(t, 1)
	if err := net.SetInput([]float64{1.0}); err == nil {
		t.Error("expected error when setting input of invalid size")
	}
}
