package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// actorMLP implements a deterministic policy network for continuous
// actions. Observations pass through fully-connected hidden layers and
// a linear action head, whose output is squashed by tanh and scaled so
// that each action dimension lies in [-maxAction, maxAction].
type actorMLP struct {
	g         *G.ExprGraph
	layers    []Layer
	input     *G.Node
	maxAction float64

	numOutputs int
	numInputs  int
	batchSize  int

	// Data needed for gobbing and cloning
	hiddenSizes []int
	biases      []bool
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	prediction *G.Node
	predVal    G.Value
}

// NewActorMLP creates and returns a new actor MLP with action
// dimensionality equal to actions. The graph parameter g is populated
// with the network.
//
// The network has a number of layers equal to len(hiddenSizes) + 1:
// for index i, hiddenSizes[i] is the number of units in hidden layer
// i, biases[i] is whether that layer has a bias unit, and
// activations[i] is its activation. A final linear action head with a
// bias unit is always added, followed by the scaled tanh squashing.
// The init parameter determines the weight initialization scheme and
// maxAction the symmetric action bound.
func NewActorMLP(features, batch, actions int, g *G.ExprGraph,
	hiddenSizes []int, biases []bool, init G.InitWFn,
	activations []*Activation, maxAction float64) (NeuralNet, error) {
	if err := validateLayers("newactormlp", hiddenSizes, biases,
		activations); err != nil {
		return nil, err
	}
	if maxAction <= 0 {
		return nil, fmt.Errorf("newactormlp: maxAction must be positive "+
			"\n\thave(%v)", maxAction)
	}

	input := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, features),
		G.WithName("actorInput"), G.WithInit(G.Zeroes()))

	return NewActorMLPFromInput(input, actions, g, hiddenSizes, biases,
		init, activations, maxAction)
}

// NewActorMLPFromInput returns a new actor MLP that reads from a
// specific input node. This allows the predicted action batch of the
// network to feed other networks that share the same input node and
// graph.
func NewActorMLPFromInput(input *G.Node, actions int, g *G.ExprGraph,
	hiddenSizes []int, biases []bool, init G.InitWFn,
	activations []*Activation, maxAction float64) (NeuralNet, error) {
	if !input.IsMatrix() {
		return nil, fmt.Errorf("newactormlpfrominput: input must be a " +
			"matrix")
	}

	batch := input.Shape()[0]
	features := input.Shape()[1]

	// Add the linear action head
	hiddenSizes = append(hiddenSizes, actions)
	biases = append(biases, true)
	activations = append(activations, Identity())

	layers := addfcLayers(g, hiddenSizes, biases, activations, init,
		features, "Actor", "")

	network := actorMLP{
		g:           g,
		layers:      layers,
		input:       input,
		maxAction:   maxAction,
		numOutputs:  actions,
		numInputs:   features,
		batchSize:   batch,
		hiddenSizes: hiddenSizes,
		biases:      biases,
		activations: activations,
	}
	if _, err := network.fwd(input); err != nil {
		return nil, fmt.Errorf("newactormlp: could not compute forward "+
			"pass: %v", err)
	}

	return &network, nil
}

// Graph returns the computational graph of the actorMLP
func (a *actorMLP) Graph() *G.ExprGraph {
	return a.g
}

// Clone clones an actorMLP
func (a *actorMLP) Clone() (NeuralNet, error) {
	return a.CloneWithBatch(a.batchSize)
}

// CloneWithBatch clones an actorMLP with a new input batch size
func (a *actorMLP) CloneWithBatch(batchSize int) (NeuralNet, error) {
	graph := G.NewGraph()

	input := G.NewMatrix(
		graph,
		tensor.Float64,
		G.WithShape(batchSize, a.numInputs),
		G.WithName("actorInput"),
		G.WithInit(G.Zeroes()),
	)

	return a.cloneWithInputTo(input, graph)
}

// cloneWithInputTo clones an actorMLP, weight values included, to a
// new computational graph with a specified input node
func (a *actorMLP) cloneWithInputTo(input *G.Node,
	graph *G.ExprGraph) (NeuralNet, error) {
	if input.Graph() != graph {
		return nil, fmt.Errorf("clonewithinputto: input node not on " +
			"argument graph")
	}
	if !input.IsMatrix() {
		return nil, fmt.Errorf("clonewithinputto: input must be a matrix " +
			"node")
	}

	layers := make([]Layer, len(a.layers))
	for i := range a.layers {
		layers[i] = a.layers[i].CloneTo(graph)
	}

	network := actorMLP{
		g:           graph,
		layers:      layers,
		input:       input,
		maxAction:   a.maxAction,
		numOutputs:  a.numOutputs,
		numInputs:   a.numInputs,
		batchSize:   input.Shape()[0],
		hiddenSizes: a.hiddenSizes,
		biases:      a.biases,
		activations: a.activations,
	}
	if _, err := network.fwd(input); err != nil {
		return nil, fmt.Errorf("clonewithinputto: could not compute "+
			"forward pass: %v", err)
	}

	return &network, nil
}

// BatchSize returns the batch size of inputs to the network
func (a *actorMLP) BatchSize() int {
	return a.batchSize
}

// Features returns the number of features in a single observation
// vector that the network takes as input
func (a *actorMLP) Features() int {
	return a.numInputs
}

// Outputs returns the action dimensionality of the network
func (a *actorMLP) Outputs() int {
	return a.numOutputs
}

// MaxAction returns the symmetric action bound of the network
func (a *actorMLP) MaxAction() float64 {
	return a.maxAction
}

// SetInput sets the value of the input node before running the forward
// pass
func (a *actorMLP) SetInput(input []float64) error {
	if len(input) != a.numInputs*a.batchSize {
		return fmt.Errorf("setinput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", a.numInputs*a.batchSize, len(input))
	}
	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(a.input.Shape()...),
	)
	return G.Let(a.input, inputTensor)
}

// Set sets the weights of the actorMLP to be equal to the weights of
// another network of the same architecture
func (a *actorMLP) Set(source NeuralNet) error {
	return setWeights(a, source)
}

// Polyak sets the weights of the actorMLP to a polyak average between
// its existing weights and the weights of another network of the same
// architecture
func (a *actorMLP) Polyak(source NeuralNet, tau float64) error {
	return polyakWeights(a, source, tau)
}

// Learnables returns the learnable nodes in the actorMLP
func (a *actorMLP) Learnables() G.Nodes {
	// Lazy instantiation
	if a.learnables == nil {
		a.learnables = learnablesOf(a.layers)
	}
	return a.learnables
}

// Model returns the learnable nodes with their gradients
func (a *actorMLP) Model() []G.ValueGrad {
	// Lazy instantiation
	if a.model == nil {
		a.model = modelOf(a)
	}
	return a.model
}

// fwd adds the forward pass of the actorMLP on the input node to the
// computational graph
func (a *actorMLP) fwd(input *G.Node) (*G.Node, error) {
	pred := input
	var err error
	for i, l := range a.layers {
		if pred, err = l.fwd(pred); err != nil {
			return nil, fmt.Errorf("fwd: could not compute forward pass "+
				"of layer %v: %v", i, err)
		}
	}

	// Squash the action head and scale to the action bounds
	pred = G.Must(G.Tanh(pred))
	scale := G.NewConstant(a.maxAction)
	pred = G.Must(G.Mul(pred, scale))

	a.prediction = pred
	G.Read(a.prediction, &a.predVal)

	return pred, nil
}

// Output returns the action batch predicted on the last VM run
func (a *actorMLP) Output() []G.Value {
	return []G.Value{a.predVal}
}

// Prediction returns the node of the computational graph that stores
// the predicted action batch
func (a *actorMLP) Prediction() []*G.Node {
	return []*G.Node{a.prediction}
}

// GobEncode implements the gob.GobEncoder interface
func (a *actorMLP) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	// The head layer was appended by the constructor and is
	// reconstructed on decode
	numHidden := len(a.hiddenSizes) - 1
	data := []interface{}{
		a.numOutputs, a.numInputs, a.batchSize, a.maxAction,
		a.hiddenSizes[:numHidden], a.biases[:numHidden],
		a.activations[:numHidden],
	}
	for _, datum := range data {
		if err := enc.Encode(datum); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode "+
				"architecture: %v", err)
		}
	}

	for i, layer := range a.layers {
		if err := enc.Encode(layer); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode layer "+
				"%v: %v", i, err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (a *actorMLP) GobDecode(in []byte) error {
	buf := bytes.NewReader(in)
	dec := gob.NewDecoder(buf)

	var numOutputs, numInputs, batchSize int
	var maxAction float64
	var hiddenSizes []int
	var biases []bool
	var activations []*Activation

	targets := []interface{}{
		&numOutputs, &numInputs, &batchSize, &maxAction, &hiddenSizes,
		&biases, &activations,
	}
	for _, target := range targets {
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("gobdecode: could not decode "+
				"architecture: %v", err)
		}
	}

	g := G.NewGraph()
	newNet, err := NewActorMLP(numInputs, batchSize, numOutputs, g,
		hiddenSizes, biases, G.Zeroes(), activations, maxAction)
	if err != nil {
		return fmt.Errorf("gobdecode: could not construct new actor: %v",
			err)
	}
	newActor := newNet.(*actorMLP)

	for i := range newActor.layers {
		if err := dec.Decode(newActor.layers[i]); err != nil {
			return fmt.Errorf("gobdecode: could not decode layer %v: %v",
				i, err)
		}
	}

	*a = *newActor
	return nil
}
