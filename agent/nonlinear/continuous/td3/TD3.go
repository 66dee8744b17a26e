// Package td3 implements the Twin Delayed Deep Deterministic policy
// gradient algorithm for continuous control:
//
//	https://arxiv.org/abs/1802.09477
//
// TD3 learns a deterministic policy alongside two action-value
// critics. The critics are regressed toward a shared bootstrap target
// computed from the minimum of two target critic predictions at a
// smoothed target policy action. The actor is updated at a lower
// frequency than the critics, following the gradient of the first
// critic through the predicted actions.
package td3

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	env "github.com/samuelfneumann/golagom/environment"
	"github.com/samuelfneumann/golagom/expreplay"
	"github.com/samuelfneumann/golagom/network"
	ts "github.com/samuelfneumann/golagom/timestep"
	"github.com/samuelfneumann/golagom/utils/floatutils"
	"github.com/samuelfneumann/golagom/utils/tensorutils"
)

// LearnResult records the outcome of a sequence of gradient updates
type LearnResult struct {
	CriticLoss []float64 // Critic loss of each critic update
	ActorLoss  []float64 // Actor loss of each actor update

	CriticUpdates int
	ActorUpdates  int

	// Gradient norms of the most recent critic and actor updates
	CriticGradNorm float64
	ActorGradNorm  float64

	// Summary statistics of the online critic predictions over all
	// updates
	MeanQ1, StdDevQ1, MinQ1, MaxQ1 float64
	MeanQ2, StdDevQ2, MinQ2, MaxQ2 float64
}

// learnStep records the outcome of a single gradient update
type learnStep struct {
	criticLoss     float64
	criticGradNorm float64
	q1             []float64
	q2             []float64

	actorLoss     float64
	actorGradNorm float64
	updatedActor  bool
}

// TD3 implements the Twin Delayed Deep Deterministic policy gradient
// algorithm
type TD3 struct {
	// Deterministic policy for action selection
	behaviour   network.NeuralNet
	behaviourVM G.VM

	// Actor whose weights are adapted. Its graph also holds a clone of
	// the twin critic, wired to the actor's predicted actions so that
	// the actor loss -Q1(s, π(s)) is differentiable with respect to
	// the actor weights only.
	trainActor   network.NeuralNet
	actorCritic  network.ActionValue
	trainActorVM G.VM
	actorSolver  G.Solver
	actorLossVal G.Value

	// Twin critic whose weights are adapted
	trainCritic   network.ActionValue
	updateTarget  *G.Node
	trainCriticVM G.VM
	criticSolver  G.Solver
	criticLossVal G.Value

	// Target networks providing the bootstrap target
	targetActor    network.NeuralNet
	targetActorVM  G.VM
	targetCritic   network.ActionValue
	targetCriticVM G.VM

	// tau is the proportion of the online network weights mixed into
	// the target network weights on each target update
	tau         float64
	policyDelay int
	maxGradNorm float64

	explorationNoise distuv.Normal
	targetNoise      distuv.Normal
	targetNoiseClip  float64
	maxAction        float64

	replay expreplay.ExperienceReplayer

	// Last observed timestep, at which the next action will be taken
	nextStep ts.TimeStep

	batchSize  int
	features   int
	actionDims int

	criticUpdates int // Gradient steps taken on the critic
	totalSteps    int // Environmental steps observed

	eval bool
}

// New creates and returns a new TD3 agent on the argument environment.
// The environment must have bounded continuous actions with bounds
// symmetric around 0 and identical along each action dimension.
func New(e env.Environment, c Config, seed uint64) (*TD3, error) {
	if e.ActionSpec().Cardinality != env.Continuous {
		return nil, fmt.Errorf("td3: cannot use non-continuous actions")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("td3: %v", err)
	}

	actionSpec := e.ActionSpec()
	actionDims := actionSpec.Shape.Len()
	maxAction := actionSpec.UpperBound.AtVec(0)
	for i := 0; i < actionDims; i++ {
		if actionSpec.UpperBound.AtVec(i) != maxAction ||
			actionSpec.LowerBound.AtVec(i) != -maxAction {
			return nil, fmt.Errorf("td3: action bounds must be symmetric "+
				"and identical along each dimension \n\thave([%v, %v])",
				actionSpec.LowerBound.AtVec(i), actionSpec.UpperBound.AtVec(i))
		}
	}

	features := e.ObservationSpec().Shape.Len()
	batchSize := c.BatchSize()
	init := c.InitWFn.InitWFn()

	// Actor and the actor loss -Q1(s, π(s)). The critic clone reads
	// the actor's input and predicted action nodes so that the loss
	// gradient flows through the predicted actions into the actor
	// weights.
	gActor := G.NewGraph()
	actorObs := G.NewMatrix(
		gActor,
		tensor.Float64,
		G.WithShape(batchSize, features),
		G.WithName("actorInput"),
		G.WithInit(G.Zeroes()),
	)
	trainActor, err := network.NewActorMLPFromInput(actorObs, actionDims,
		gActor, c.PolicyLayers, c.PolicyBiases, init, c.PolicyActivations,
		maxAction)
	if err != nil {
		return nil, fmt.Errorf("td3: could not create actor: %v", err)
	}

	// Twin critic and the critic loss. The critic is regressed toward
	// an update target computed outside the graph.
	gCritic := G.NewGraph()
	trainCritic, err := network.NewTwinQMLP(features, actionDims, batchSize,
		gCritic, c.CriticLayers, c.CriticBiases, init, c.CriticActivations)
	if err != nil {
		return nil, fmt.Errorf("td3: could not create critic: %v", err)
	}

	updateTarget := G.NewMatrix(
		gCritic,
		tensor.Float64,
		G.WithShape(batchSize, 1),
		G.WithName("updateTarget"),
	)
	q1Loss := G.Must(G.Sub(trainCritic.Prediction()[0], updateTarget))
	q1Loss = G.Must(G.Mean(G.Must(G.Square(q1Loss))))
	q2Loss := G.Must(G.Sub(trainCritic.Prediction()[1], updateTarget))
	q2Loss = G.Must(G.Mean(G.Must(G.Square(q2Loss))))
	criticLoss := G.Must(G.Add(q1Loss, q2Loss))

	var criticLossVal G.Value
	G.Read(criticLoss, &criticLossVal)

	if _, err := G.Grad(criticLoss,
		trainCritic.Learnables()...); err != nil {
		return nil, fmt.Errorf("td3: could not compute critic gradient: %v",
			err)
	}
	trainCriticVM := G.NewTapeMachine(
		gCritic,
		G.BindDualValues(trainCritic.Learnables()...),
	)

	// Finish the actor loss now that the critic exists
	actorCritic, err := trainCritic.CloneWithInputsTo(actorObs,
		trainActor.Prediction()[0], gActor)
	if err != nil {
		return nil, fmt.Errorf("td3: could not create critic for the "+
			"actor loss: %v", err)
	}
	actorLoss := G.Must(G.Mean(actorCritic.Prediction()[0]))
	actorLoss = G.Must(G.Neg(actorLoss))

	var actorLossVal G.Value
	G.Read(actorLoss, &actorLossVal)

	if _, err := G.Grad(actorLoss, trainActor.Learnables()...); err != nil {
		return nil, fmt.Errorf("td3: could not compute actor gradient: %v",
			err)
	}
	trainActorVM := G.NewTapeMachine(
		gActor,
		G.BindDualValues(trainActor.Learnables()...),
	)

	// Behaviour policy selects a single action at a time
	behaviour, err := trainActor.CloneWithBatch(1)
	if err != nil {
		return nil, fmt.Errorf("td3: could not create behaviour policy: %v",
			err)
	}
	behaviourVM := G.NewTapeMachine(behaviour.Graph())

	// Target networks start as copies of the online networks
	targetActor, err := trainActor.Clone()
	if err != nil {
		return nil, fmt.Errorf("td3: could not create target actor: %v", err)
	}
	targetActorVM := G.NewTapeMachine(targetActor.Graph())

	targetCriticClone, err := trainCritic.Clone()
	if err != nil {
		return nil, fmt.Errorf("td3: could not create target critic: %v",
			err)
	}
	targetCritic := targetCriticClone.(network.ActionValue)
	targetCriticVM := G.NewTapeMachine(targetCritic.Graph())

	replay, err := c.ExpReplay.Create(features, actionDims, int64(seed))
	if err != nil {
		return nil, fmt.Errorf("td3: could not create experience replay "+
			"buffer: %v", err)
	}

	src := rand.NewSource(seed)
	explorationNoise := distuv.Normal{
		Mu:    0.0,
		Sigma: c.ExplorationNoise,
		Src:   src,
	}
	targetNoise := distuv.Normal{
		Mu:    0.0,
		Sigma: c.TargetNoise,
		Src:   src,
	}

	return &TD3{
		behaviour:   behaviour,
		behaviourVM: behaviourVM,

		trainActor:   trainActor,
		actorCritic:  actorCritic,
		trainActorVM: trainActorVM,
		actorSolver:  c.ActorSolver.Solver,
		actorLossVal: actorLossVal,

		trainCritic:   trainCritic,
		updateTarget:  updateTarget,
		trainCriticVM: trainCriticVM,
		criticSolver:  c.CriticSolver.Solver,
		criticLossVal: criticLossVal,

		targetActor:    targetActor,
		targetActorVM:  targetActorVM,
		targetCritic:   targetCritic,
		targetCriticVM: targetCriticVM,

		tau:         1.0 - c.Polyak,
		policyDelay: c.PolicyDelay,
		maxGradNorm: c.MaxGradNorm,

		explorationNoise: explorationNoise,
		targetNoise:      targetNoise,
		targetNoiseClip:  c.TargetNoiseClip,
		maxAction:        maxAction,

		replay: replay,

		nextStep: ts.TimeStep{},

		batchSize:  batchSize,
		features:   features,
		actionDims: actionDims,

		criticUpdates: 0,
		totalSteps:    0,

		eval: false,
	}, nil
}

// SelectAction returns the action of the deterministic policy at the
// timestep's observation. In training mode, Gaussian exploration noise
// is added to each action dimension before clipping the action to the
// environmental action bounds.
func (t *TD3) SelectAction(step ts.TimeStep) *mat.VecDense {
	obs := make([]float64, t.features)
	for i := range obs {
		obs[i] = step.Observation.AtVec(i)
	}
	if err := t.behaviour.SetInput(obs); err != nil {
		panic(fmt.Sprintf("selectaction: could not set policy input: %v",
			err))
	}
	if err := t.behaviourVM.RunAll(); err != nil {
		panic(fmt.Sprintf("selectaction: could not run policy: %v", err))
	}

	action := make([]float64, t.actionDims)
	copy(action, t.behaviour.Output()[0].Data().([]float64))
	t.behaviourVM.Reset()

	if !t.eval {
		for i := range action {
			action[i] += t.explorationNoise.Rand()
			action[i] = floatutils.Clip(action[i], -t.maxAction, t.maxAction)
		}
	}

	return mat.NewVecDense(t.actionDims, action)
}

// ObserveFirst observes and records the first episodic timestep
func (t *TD3) ObserveFirst(step ts.TimeStep) error {
	if !step.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n",
			step.Number)
	}
	t.nextStep = step
	return nil
}

// Observe observes and records any timestep other than the first
// timestep, adding the transition that led to it to the replay buffer.
// Transitions into terminal states store a discount of 0 so that the
// critic update target does not bootstrap past the end of an episode.
func (t *TD3) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	if action.Len() != t.actionDims {
		return fmt.Errorf("observe: invalid action dimensions \n\twant(%v)"+
			"\n\thave(%v)", t.actionDims, action.Len())
	}

	transition := ts.NewTransition(t.nextStep, action, nextStep, action)
	if nextStep.Last() {
		transition.Discount = 0.0
	}
	if err := t.replay.Add(transition); err != nil {
		return fmt.Errorf("observe: could not add to replay buffer: %v", err)
	}

	t.nextStep = nextStep
	t.totalSteps++
	return nil
}

// Step performs a single gradient update to the agent. If the replay
// buffer does not yet hold enough transitions, no update is performed.
func (t *TD3) Step() error {
	_, err := t.learn()
	if expreplay.IsEmptyBuffer(err) || expreplay.IsInsufficientSamples(err) {
		return nil
	}
	return err
}

// Learn performs the argument number of gradient updates, returning
// the losses generated by each update. Actor and target network
// updates happen on every PolicyDelay-th critic update.
func (t *TD3) Learn(updates int) (*LearnResult, error) {
	if updates < 1 {
		return nil, fmt.Errorf("learn: updates must be positive "+
			"\n\thave(%v)", updates)
	}

	result := &LearnResult{
		CriticLoss: make([]float64, 0, updates),
		ActorLoss:  make([]float64, 0, updates/t.policyDelay+1),
	}
	allQ1 := make([]float64, 0, updates*t.batchSize)
	allQ2 := make([]float64, 0, updates*t.batchSize)
	for i := 0; i < updates; i++ {
		step, err := t.learn()
		if err != nil {
			return nil, fmt.Errorf("learn: %v", err)
		}

		result.CriticLoss = append(result.CriticLoss, step.criticLoss)
		result.CriticGradNorm = step.criticGradNorm
		result.CriticUpdates++
		allQ1 = append(allQ1, step.q1...)
		allQ2 = append(allQ2, step.q2...)

		if step.updatedActor {
			result.ActorLoss = append(result.ActorLoss, step.actorLoss)
			result.ActorGradNorm = step.actorGradNorm
			result.ActorUpdates++
		}
	}

	result.MeanQ1 = stat.Mean(allQ1, nil)
	result.StdDevQ1 = stat.StdDev(allQ1, nil)
	result.MinQ1 = floats.Min(allQ1)
	result.MaxQ1 = floats.Max(allQ1)
	result.MeanQ2 = stat.Mean(allQ2, nil)
	result.StdDevQ2 = stat.StdDev(allQ2, nil)
	result.MinQ2 = floats.Min(allQ2)
	result.MaxQ2 = floats.Max(allQ2)

	return result, nil
}

// learn performs a single critic update and, on every policyDelay-th
// critic update, an actor and target network update
func (t *TD3) learn() (*learnStep, error) {
	state, action, reward, discount, nextState, err := t.replay.Sample()
	if err != nil {
		return nil, err
	}

	target, err := t.computeTarget(reward, discount, nextState)
	if err != nil {
		return nil, err
	}

	step := &learnStep{}
	step.criticLoss, step.criticGradNorm, step.q1, step.q2, err =
		t.updateCritic(state, action, target)
	if err != nil {
		return nil, err
	}
	t.criticUpdates++

	if t.criticUpdates%t.policyDelay == 0 {
		step.actorLoss, step.actorGradNorm, err = t.updateActor(state)
		if err != nil {
			return nil, err
		}
		if err := t.updateTargets(); err != nil {
			return nil, err
		}
		step.updatedActor = true
	}

	return step, nil
}

// computeTarget computes the critic update target
//
//	y = r + γ * min(Q1'(s', a'), Q2'(s', a'))
//
// where a' is the target policy action at s' with clipped Gaussian
// smoothing noise added, and γ is 0 on transitions into terminal
// states.
func (t *TD3) computeTarget(reward, discount,
	nextState []float64) ([]float64, error) {
	// Predict the target policy actions in the next states
	if err := t.targetActor.SetInput(nextState); err != nil {
		return nil, fmt.Errorf("computetarget: could not set target actor "+
			"input: %v", err)
	}
	if err := t.targetActorVM.RunAll(); err != nil {
		return nil, fmt.Errorf("computetarget: could not run target "+
			"actor: %v", err)
	}
	nextAction := make([]float64, t.batchSize*t.actionDims)
	copy(nextAction, t.targetActor.Output()[0].Data().([]float64))
	t.targetActorVM.Reset()

	// Smooth the target policy with clipped noise, keeping the target
	// action within the environmental action bounds
	for i := range nextAction {
		noise := floatutils.Clip(t.targetNoise.Rand(), -t.targetNoiseClip,
			t.targetNoiseClip)
		nextAction[i] = floatutils.Clip(nextAction[i]+noise, -t.maxAction,
			t.maxAction)
	}

	// Predict the twin target critic values at the smoothed actions
	if err := t.targetCritic.SetInput(nextState); err != nil {
		return nil, fmt.Errorf("computetarget: could not set target critic "+
			"input: %v", err)
	}
	if err := t.targetCritic.SetActions(nextAction); err != nil {
		return nil, fmt.Errorf("computetarget: could not set target critic "+
			"actions: %v", err)
	}
	if err := t.targetCriticVM.RunAll(); err != nil {
		return nil, fmt.Errorf("computetarget: could not run target "+
			"critic: %v", err)
	}
	q1 := t.targetCritic.Output()[0].Data().([]float64)
	q2 := t.targetCritic.Output()[1].Data().([]float64)

	target := make([]float64, t.batchSize)
	for i := range target {
		target[i] = reward[i] + discount[i]*floatutils.Min(q1[i], q2[i])
	}
	t.targetCriticVM.Reset()

	return target, nil
}

// updateCritic regresses both critics toward the argument update
// target with a single gradient step, returning the critic loss, the
// global gradient norm, and the twin critic predictions on the batch
func (t *TD3) updateCritic(state, action, target []float64) (loss,
	gradNorm float64, q1, q2 []float64, err error) {
	if err := t.trainCritic.SetInput(state); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not set "+
			"critic input: %v", err)
	}
	if err := t.trainCritic.SetActions(action); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not set "+
			"critic actions: %v", err)
	}

	targetTensor := tensor.New(
		tensor.WithBacking(target),
		tensor.WithShape(t.batchSize, 1),
	)
	if err := G.Let(t.updateTarget, targetTensor); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not set "+
			"update target: %v", err)
	}

	if err := t.trainCriticVM.RunAll(); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not run "+
			"critic update: %v", err)
	}

	// A non-positive norm limit still measures the gradient norm, but
	// never rescales
	maxNorm := t.maxGradNorm
	if maxNorm <= 0 {
		maxNorm = math.Inf(1)
	}
	gradNorm, err = tensorutils.ClipGradNorm(t.trainCritic.Learnables(),
		maxNorm)
	if err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not rescale "+
			"gradient: %v", err)
	}

	if err := t.criticSolver.Step(t.trainCritic.Model()); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("updatecritic: could not step "+
			"critic solver: %v", err)
	}

	loss = t.criticLossVal.Data().(float64)
	q1 = make([]float64, t.batchSize)
	copy(q1, t.trainCritic.Output()[0].Data().([]float64))
	q2 = make([]float64, t.batchSize)
	copy(q2, t.trainCritic.Output()[1].Data().([]float64))
	t.trainCriticVM.Reset()

	return loss, gradNorm, q1, q2, nil
}

// updateActor performs a single gradient step on the actor following
// the gradient of -Q1(s, π(s)), returning the actor loss and the
// global gradient norm
func (t *TD3) updateActor(state []float64) (loss, gradNorm float64,
	err error) {
	// The critic on the actor's graph holds stale weights from the
	// previous actor update
	if err := t.actorCritic.Set(t.trainCritic); err != nil {
		return 0, 0, fmt.Errorf("updateactor: could not refresh critic "+
			"weights: %v", err)
	}

	if err := t.trainActor.SetInput(state); err != nil {
		return 0, 0, fmt.Errorf("updateactor: could not set actor input: %v",
			err)
	}
	if err := t.trainActorVM.RunAll(); err != nil {
		return 0, 0, fmt.Errorf("updateactor: could not run actor update: %v",
			err)
	}

	maxNorm := t.maxGradNorm
	if maxNorm <= 0 {
		maxNorm = math.Inf(1)
	}
	gradNorm, err = tensorutils.ClipGradNorm(t.trainActor.Learnables(),
		maxNorm)
	if err != nil {
		return 0, 0, fmt.Errorf("updateactor: could not rescale "+
			"gradient: %v", err)
	}

	if err := t.actorSolver.Step(t.trainActor.Model()); err != nil {
		return 0, 0, fmt.Errorf("updateactor: could not step actor "+
			"solver: %v", err)
	}

	loss = t.actorLossVal.Data().(float64)
	t.trainActorVM.Reset()

	// The behaviour policy shares the newly learned actor weights
	if err := t.behaviour.Set(t.trainActor); err != nil {
		return loss, gradNorm, fmt.Errorf("updateactor: could not update "+
			"behaviour policy: %v", err)
	}

	return loss, gradNorm, nil
}

// updateTargets moves the target networks toward the online networks
// with a polyak averaging step
func (t *TD3) updateTargets() error {
	if err := t.targetActor.Polyak(t.trainActor, t.tau); err != nil {
		return fmt.Errorf("updatetargets: could not update target "+
			"actor: %v", err)
	}
	if err := t.targetCritic.Polyak(t.trainCritic, t.tau); err != nil {
		return fmt.Errorf("updatetargets: could not update target "+
			"critic: %v", err)
	}
	return nil
}

// TotalSteps returns the number of environmental steps the agent has
// observed
func (t *TD3) TotalSteps() int {
	return t.totalSteps
}

// EndEpisode performs cleanup at the end of an episode
func (t *TD3) EndEpisode() {}

// Eval sets the agent into evaluation mode
func (t *TD3) Eval() {
	t.eval = true
}

// Train sets the agent into training mode
func (t *TD3) Train() {
	t.eval = false
}

// IsEval returns whether the agent is in evaluation mode
func (t *TD3) IsEval() bool {
	return t.eval
}

// Close closes the VMs of the agent's computational graphs. The agent
// cannot be used after a call to Close.
func (t *TD3) Close() error {
	vms := []G.VM{
		t.behaviourVM,
		t.trainActorVM,
		t.trainCriticVM,
		t.targetActorVM,
		t.targetCriticVM,
	}
	for _, vm := range vms {
		if err := vm.Close(); err != nil {
			return fmt.Errorf("close: could not close VM: %v", err)
		}
	}
	return nil
}

// Save serializes the agent's networks and update counters to the
// argument file
func (t *TD3) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("save: could not create directory: %v", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	data := []interface{}{
		t.totalSteps, t.criticUpdates,
		&t.trainActor, &t.trainCritic, &t.targetActor, &t.targetCritic,
	}
	for _, datum := range data {
		if err := enc.Encode(datum); err != nil {
			return fmt.Errorf("save: could not encode agent: %v", err)
		}
	}

	return nil
}

// Load restores the networks and update counters of a previously saved
// agent. The agent must have been constructed with the same
// architecture as the saved agent.
func (t *TD3) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(&t.totalSteps); err != nil {
		return fmt.Errorf("load: could not decode step counter: %v", err)
	}
	if err := dec.Decode(&t.criticUpdates); err != nil {
		return fmt.Errorf("load: could not decode update counter: %v", err)
	}

	// Decode onto fresh graphs, then copy the weight values into the
	// existing networks so that the compiled VMs stay valid
	var trainActor, targetActor network.NeuralNet
	var trainCritic, targetCritic network.NeuralNet
	targets := []*network.NeuralNet{
		&trainActor, &trainCritic, &targetActor, &targetCritic,
	}
	for _, target := range targets {
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("load: could not decode network: %v", err)
		}
	}

	if err := t.trainActor.Set(trainActor); err != nil {
		return fmt.Errorf("load: could not restore actor: %v", err)
	}
	if err := t.trainCritic.Set(trainCritic); err != nil {
		return fmt.Errorf("load: could not restore critic: %v", err)
	}
	if err := t.targetActor.Set(targetActor); err != nil {
		return fmt.Errorf("load: could not restore target actor: %v", err)
	}
	if err := t.targetCritic.Set(targetCritic); err != nil {
		return fmt.Errorf("load: could not restore target critic: %v", err)
	}
	if err := t.behaviour.Set(t.trainActor); err != nil {
		return fmt.Errorf("load: could not restore behaviour policy: %v",
			err)
	}
	if err := t.actorCritic.Set(t.trainCritic); err != nil {
		return fmt.Errorf("load: could not restore actor loss critic: %v",
			err)
	}

	return nil
}
