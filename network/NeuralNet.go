// Package network implements neural networks on Gorgonia expression
// graphs
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet implements a neural network on a Gorgonia expression
// graph. A NeuralNet may have more than one output head; Prediction
// and Output return one node/value per head.
//
// NeuralNets do not own a virtual machine. Callers construct a VM on
// the net's Graph and run it to compute Output from the values set by
// SetInput.
type NeuralNet interface {
	// Graph returns the expression graph the network is built on
	Graph() *G.ExprGraph

	// Clone clones the network, its current weight values included,
	// to a new expression graph
	Clone() (NeuralNet, error)

	// CloneWithBatch clones the network to a new expression graph,
	// changing the batch size of the clone's input
	CloneWithBatch(int) (NeuralNet, error)

	BatchSize() int
	Features() int
	Outputs() int

	// SetInput sets the value of the network's input node, which is
	// given in row major order
	SetInput([]float64) error

	// Set sets the weights of the network to be equal to those of
	// another network of the same architecture
	Set(NeuralNet) error

	// Polyak sets the weights w of the network to the exponential
	// average w = w*(1-tau) + source*tau with the weights of another
	// network of the same architecture
	Polyak(source NeuralNet, tau float64) error

	// Learnables returns the nodes of the network that are learned
	// by gradient descent
	Learnables() G.Nodes

	// Model returns the learnable nodes with their gradients
	Model() []G.ValueGrad

	// Output returns the values of the network's output heads after
	// the last VM run
	Output() []G.Value

	// Prediction returns the nodes of the computational graph that
	// store the network's output heads
	Prediction() []*G.Node
}

// ActionValue is a NeuralNet that estimates action values from
// observation-action input pairs. SetInput sets the observation input;
// SetActions sets the action input.
type ActionValue interface {
	NeuralNet

	SetActions([]float64) error

	// CloneWithInputsTo clones the network, current weight values
	// included, onto the argument graph, wiring the clone's
	// observation and action inputs to the argument nodes. This
	// allows another network's output node on the same graph to feed
	// the clone, e.g. for a policy-improvement objective.
	CloneWithInputsTo(obs, actions *G.Node, g *G.ExprGraph) (ActionValue,
		error)
}
