package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func init() {
	gob.Register(&fcLayer{})
	gob.Register(&actorMLP{})
	gob.Register(&twinQMLP{})
}

// twinQMLP implements a twin action-value network. Two fully-connected
// stacks of identical shape each consume the concatenation of an
// observation batch and an action batch along the feature dimension
// and predict one scalar action value per sample. The two stacks share
// no weights, providing two independent estimates Q1 and Q2.
type twinQMLP struct {
	g        *G.ExprGraph
	obs      *G.Node
	actions  *G.Node
	q1Layers []Layer
	q2Layers []Layer

	// Whether the observation and action nodes are input nodes whose
	// values can be set, rather than nodes computed by the graph
	obsSettable     bool
	actionsSettable bool

	numInputs  int // Observation features
	actionDims int
	batchSize  int

	// Data needed for gobbing and cloning
	hiddenSizes []int
	biases      []bool
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	predictions []*G.Node
	q1Val       G.Value
	q2Val       G.Value
}

// NewTwinQMLP creates and returns a new twin action-value MLP on graph
// g for observations with the argument number of features and actions
// with dimensionality actionDims.
//
// Each of the two stacks has len(hiddenSizes) hidden layers followed
// by a linear value head with a bias unit. For index i, hiddenSizes[i]
// is the number of units in hidden layer i of both stacks, biases[i]
// is whether that layer has a bias unit, and activations[i] is its
// activation. The init parameter determines the weight initialization
// scheme.
func NewTwinQMLP(features, actionDims, batch int, g *G.ExprGraph,
	hiddenSizes []int, biases []bool, init G.InitWFn,
	activations []*Activation) (ActionValue, error) {
	if err := validateLayers("newtwinqmlp", hiddenSizes, biases,
		activations); err != nil {
		return nil, err
	}

	obs := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, features),
		G.WithName("twinQObs"), G.WithInit(G.Zeroes()))
	actions := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, actionDims),
		G.WithName("twinQActions"), G.WithInit(G.Zeroes()))

	// Add the linear value heads
	hiddenSizes = append(hiddenSizes, 1)
	biases = append(biases, true)
	activations = append(activations, Identity())

	inFeatures := features + actionDims
	q1Layers := addfcLayers(g, hiddenSizes, biases, activations, init,
		inFeatures, "TwinQ1", "")
	q2Layers := addfcLayers(g, hiddenSizes, biases, activations, init,
		inFeatures, "TwinQ2", "")

	network := twinQMLP{
		g:               g,
		obs:             obs,
		actions:         actions,
		q1Layers:        q1Layers,
		q2Layers:        q2Layers,
		obsSettable:     true,
		actionsSettable: true,
		numInputs:       features,
		actionDims:      actionDims,
		batchSize:       batch,
		hiddenSizes:     hiddenSizes,
		biases:          biases,
		activations:     activations,
	}
	if err := network.fwd(obs, actions); err != nil {
		return nil, fmt.Errorf("newtwinqmlp: could not compute forward "+
			"pass: %v", err)
	}

	return &network, nil
}

// Graph returns the computational graph of the twinQMLP
func (t *twinQMLP) Graph() *G.ExprGraph {
	return t.g
}

// Clone clones a twinQMLP
func (t *twinQMLP) Clone() (NeuralNet, error) {
	return t.CloneWithBatch(t.batchSize)
}

// CloneWithBatch clones a twinQMLP, weight values included, to a new
// expression graph with a new input batch size
func (t *twinQMLP) CloneWithBatch(batchSize int) (NeuralNet, error) {
	graph := G.NewGraph()

	obs := G.NewMatrix(
		graph,
		tensor.Float64,
		G.WithShape(batchSize, t.numInputs),
		G.WithName("twinQObs"),
		G.WithInit(G.Zeroes()),
	)
	actions := G.NewMatrix(
		graph,
		tensor.Float64,
		G.WithShape(batchSize, t.actionDims),
		G.WithName("twinQActions"),
		G.WithInit(G.Zeroes()),
	)

	return t.CloneWithInputsTo(obs, actions, graph)
}

// CloneWithInputsTo clones a twinQMLP, weight values included, onto
// the argument graph, wiring the clone's observation and action inputs
// to the argument nodes. The action node may be the output of another
// network on the same graph, in which case the clone's action input
// cannot be set with SetActions.
func (t *twinQMLP) CloneWithInputsTo(obs, actions *G.Node,
	g *G.ExprGraph) (ActionValue, error) {
	if obs.Graph() != g || actions.Graph() != g {
		return nil, fmt.Errorf("clonewithinputsto: input nodes not on " +
			"argument graph")
	}
	if !obs.IsMatrix() || !actions.IsMatrix() {
		return nil, fmt.Errorf("clonewithinputsto: inputs must be matrix " +
			"nodes")
	}
	if obs.Shape()[0] != actions.Shape()[0] {
		return nil, fmt.Errorf("clonewithinputsto: observation and action "+
			"batch sizes differ \n\twant(%v)\n\thave(%v)", obs.Shape()[0],
			actions.Shape()[0])
	}

	q1Layers := make([]Layer, len(t.q1Layers))
	q2Layers := make([]Layer, len(t.q2Layers))
	for i := range t.q1Layers {
		q1Layers[i] = t.q1Layers[i].CloneTo(g)
		q2Layers[i] = t.q2Layers[i].CloneTo(g)
	}

	network := twinQMLP{
		g:               g,
		obs:             obs,
		actions:         actions,
		q1Layers:        q1Layers,
		q2Layers:        q2Layers,
		obsSettable:     obs.IsVar(),
		actionsSettable: actions.IsVar(),
		numInputs:       t.numInputs,
		actionDims:      t.actionDims,
		batchSize:       obs.Shape()[0],
		hiddenSizes:     t.hiddenSizes,
		biases:          t.biases,
		activations:     t.activations,
	}
	if err := network.fwd(obs, actions); err != nil {
		return nil, fmt.Errorf("clonewithinputsto: could not compute "+
			"forward pass: %v", err)
	}

	return &network, nil
}

// BatchSize returns the batch size of inputs to the network
func (t *twinQMLP) BatchSize() int {
	return t.batchSize
}

// Features returns the number of features in a single observation
// vector that the network takes as input
func (t *twinQMLP) Features() int {
	return t.numInputs
}

// ActionDims returns the action dimensionality of the network's action
// input
func (t *twinQMLP) ActionDims() int {
	return t.actionDims
}

// Outputs returns the number of values predicted per output head
func (t *twinQMLP) Outputs() int {
	return 1
}

// SetInput sets the value of the observation input node before running
// the forward pass
func (t *twinQMLP) SetInput(obs []float64) error {
	if !t.obsSettable {
		return fmt.Errorf("setinput: observation node is computed by the " +
			"graph and cannot be set")
	}
	if len(obs) != t.numInputs*t.batchSize {
		return fmt.Errorf("setinput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", t.numInputs*t.batchSize, len(obs))
	}
	inputTensor := tensor.New(
		tensor.WithBacking(obs),
		tensor.WithShape(t.obs.Shape()...),
	)
	return G.Let(t.obs, inputTensor)
}

// SetActions sets the value of the action input node before running
// the forward pass
func (t *twinQMLP) SetActions(actions []float64) error {
	if !t.actionsSettable {
		return fmt.Errorf("setactions: action node is computed by the " +
			"graph and cannot be set")
	}
	if len(actions) != t.actionDims*t.batchSize {
		return fmt.Errorf("setactions: invalid number of actions"+
			"\n\twant(%v)\n\thave(%v)", t.actionDims*t.batchSize,
			len(actions))
	}
	actionTensor := tensor.New(
		tensor.WithBacking(actions),
		tensor.WithShape(t.actions.Shape()...),
	)
	return G.Let(t.actions, actionTensor)
}

// Set sets the weights of the twinQMLP to be equal to the weights of
// another network of the same architecture
func (t *twinQMLP) Set(source NeuralNet) error {
	return setWeights(t, source)
}

// Polyak sets the weights of the twinQMLP to a polyak average between
// its existing weights and the weights of another network of the same
// architecture
func (t *twinQMLP) Polyak(source NeuralNet, tau float64) error {
	return polyakWeights(t, source, tau)
}

// Learnables returns the learnable nodes in the twinQMLP. The nodes of
// the Q1 stack precede those of the Q2 stack.
func (t *twinQMLP) Learnables() G.Nodes {
	// Lazy instantiation
	if t.learnables == nil {
		learnables := learnablesOf(t.q1Layers)
		t.learnables = append(learnables, learnablesOf(t.q2Layers)...)
	}
	return t.learnables
}

// Model returns the learnable nodes with their gradients
func (t *twinQMLP) Model() []G.ValueGrad {
	// Lazy instantiation
	if t.model == nil {
		t.model = modelOf(t)
	}
	return t.model
}

// fwd adds the forward pass of both stacks on the input nodes to the
// computational graph
func (t *twinQMLP) fwd(obs, actions *G.Node) error {
	input := G.Must(G.Concat(1, obs, actions))

	q1 := input
	q2 := input
	var err error
	for i := range t.q1Layers {
		if q1, err = t.q1Layers[i].fwd(q1); err != nil {
			return fmt.Errorf("fwd: could not compute forward pass of Q1 "+
				"layer %v: %v", i, err)
		}
		if q2, err = t.q2Layers[i].fwd(q2); err != nil {
			return fmt.Errorf("fwd: could not compute forward pass of Q2 "+
				"layer %v: %v", i, err)
		}
	}

	t.predictions = []*G.Node{q1, q2}
	G.Read(q1, &t.q1Val)
	G.Read(q2, &t.q2Val)

	return nil
}

// Output returns the values of the Q1 and Q2 heads after the last VM
// run
func (t *twinQMLP) Output() []G.Value {
	return []G.Value{t.q1Val, t.q2Val}
}

// Prediction returns the nodes of the computational graph that store
// the Q1 and Q2 predictions
func (t *twinQMLP) Prediction() []*G.Node {
	return t.predictions
}

// GobEncode implements the gob.GobEncoder interface
func (t *twinQMLP) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	// The value heads were appended by the constructor and are
	// reconstructed on decode
	numHidden := len(t.hiddenSizes) - 1
	data := []interface{}{
		t.numInputs, t.actionDims, t.batchSize,
		t.hiddenSizes[:numHidden], t.biases[:numHidden],
		t.activations[:numHidden],
	}
	for _, datum := range data {
		if err := enc.Encode(datum); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode "+
				"architecture: %v", err)
		}
	}

	for i := range t.q1Layers {
		if err := enc.Encode(t.q1Layers[i]); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode Q1 layer "+
				"%v: %v", i, err)
		}
		if err := enc.Encode(t.q2Layers[i]); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode Q2 layer "+
				"%v: %v", i, err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *twinQMLP) GobDecode(in []byte) error {
	buf := bytes.NewReader(in)
	dec := gob.NewDecoder(buf)

	var numInputs, actionDims, batchSize int
	var hiddenSizes []int
	var biases []bool
	var activations []*Activation

	targets := []interface{}{
		&numInputs, &actionDims, &batchSize, &hiddenSizes, &biases,
		&activations,
	}
	for _, target := range targets {
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("gobdecode: could not decode "+
				"architecture: %v", err)
		}
	}

	g := G.NewGraph()
	newNet, err := NewTwinQMLP(numInputs, actionDims, batchSize, g,
		hiddenSizes, biases, G.Zeroes(), activations)
	if err != nil {
		return fmt.Errorf("gobdecode: could not construct new twin "+
			"critic: %v", err)
	}
	newTwinQ := newNet.(*twinQMLP)

	for i := range newTwinQ.q1Layers {
		if err := dec.Decode(newTwinQ.q1Layers[i]); err != nil {
			return fmt.Errorf("gobdecode: could not decode Q1 layer %v: "+
				"%v", i, err)
		}
		if err := dec.Decode(newTwinQ.q2Layers[i]); err != nil {
			return fmt.Errorf("gobdecode: could not decode Q2 layer %v: "+
				"%v", i, err)
		}
	}

	*t = *newTwinQ
	return nil
}
