package network

import (
	"testing"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func newTestTwinQ(t *testing.T, batch int) ActionValue {
	g := G.NewGraph()
	net, err := NewTwinQMLP(3, 1, batch, g, []int{8}, []bool{true},
		G.GlorotU(1.0), []*Activation{ReLU()})
	if err != nil {
		t.Fatalf("could not create twin critic: %v", err)
	}
	return net
}

// runTwinQ runs a twin critic's forward pass on the argument
// observations and actions and returns copies of both value heads
func runTwinQ(t *testing.T, net ActionValue, vm G.VM, obs,
	actions []float64) ([]float64, []float64) {
	if err := net.SetInput(obs); err != nil {
		t.Fatalf("could not set observations: %v", err)
	}
	if err := net.SetActions(actions); err != nil {
		t.Fatalf("could not set actions: %v", err)
	}
	if err := vm.RunAll(); err != nil {
		t.Fatalf("could not run twin critic: %v", err)
	}

	q1Data := net.Output()[0].Data().([]float64)
	q2Data := net.Output()[1].Data().([]float64)
	q1 := make([]float64, len(q1Data))
	q2 := make([]float64, len(q2Data))
	copy(q1, q1Data)
	copy(q2, q2Data)
	vm.Reset()

	return q1, q2
}

func TestTwinQMLPIndependentHeads(t *testing.T) {
	net := newTestTwinQ(t, 2)
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()

	obs := []float64{0.5, -0.3, 1.1, -0.9, 0.2, 0.4}
	actions := []float64{0.7, -1.3}
	q1, q2 := runTwinQ(t, net, vm, obs, actions)

	if len(q1) != 2 || len(q2) != 2 {
		t.Fatalf("invalid number of action values \n\twant(%v)\n\thave(%v, "+
			"%v)", 2, len(q1), len(q2))
	}

	// The two stacks are independently initialized and should disagree
	same := true
	for i := range q1 {
		if q1[i] != q2[i] {
			same = false
		}
	}
	if same {
		t.Error("both value heads predict identical values")
	}
}

func TestTwinQMLPCloneWithBatch(t *testing.T) {
	net := newTestTwinQ(t, 2)
	cloned, err := net.CloneWithBatch(1)
	if err != nil {
		t.Fatalf("could not clone twin critic: %v", err)
	}
	clonedQ := cloned.(ActionValue)

	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	cloneVM := G.NewTapeMachine(cloned.Graph())
	defer cloneVM.Close()

	obs := []float64{0.5, -0.3, 1.1, 0.5, -0.3, 1.1}
	actions := []float64{0.7, 0.7}
	q1, q2 := runTwinQ(t, net, vm, obs, actions)

	cloneQ1, cloneQ2 := runTwinQ(t, clonedQ, cloneVM,
		[]float64{0.5, -0.3, 1.1}, []float64{0.7})

	if q1[0] != cloneQ1[0] || q2[0] != cloneQ2[0] {
		t.Errorf("cloned twin critic predicts different values "+
			"\n\twant(%v, %v)\n\thave(%v, %v)", q1[0], q2[0], cloneQ1[0],
			cloneQ2[0])
	}
}

func TestTwinQMLPCloneWithInputsTo(t *testing.T) {
	net := newTestTwinQ(t, 1)

	// Wire a clone to input nodes on a fresh graph
	g := G.NewGraph()
	obs := G.NewMatrix(g, tensor.Float64, G.WithShape(1, 3),
		G.WithName("obs"), G.WithInit(G.Zeroes()))
	actions := G.NewMatrix(g, tensor.Float64, G.WithShape(1, 1),
		G.WithName("actions"), G.WithInit(G.Zeroes()))

	cloned, err := net.CloneWithInputsTo(obs, actions, g)
	if err != nil {
		t.Fatalf("could not clone twin critic: %v", err)
	}

	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	cloneVM := G.NewTapeMachine(g)
	defer cloneVM.Close()

	obsData := []float64{-0.2, 0.8, 0.3}
	actionData := []float64{1.5}
	q1, q2 := runTwinQ(t, net, vm, obsData, actionData)
	cloneQ1, cloneQ2 := runTwinQ(t, cloned, cloneVM, obsData, actionData)

	if q1[0] != cloneQ1[0] || q2[0] != cloneQ2[0] {
		t.Errorf("wired clone predicts different values \n\twant(%v, %v)"+
			"\n\thave(%v, %v)", q1[0], q2[0], cloneQ1[0], cloneQ2[0])
	}
}

func TestTwinQMLPInvalidInputs(t *testing.T) {
	net := newTestTwinQ(t, 1)

	if err := net.SetInput([]float64{1.0}); err == nil {
		t.Error("expected error when setting observations of invalid size")
	}
	if err := net.SetActions([]float64{1.0, 2.0}); err == nil {
		t.Error("expected error when setting actions of invalid size")
	}
}
