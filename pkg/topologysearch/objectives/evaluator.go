package objectives

import (
	"fmt"
	"math"

	"k8s.io/klog/v2"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/offloading"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

// Evaluation outcomes reported to an EvaluationObserver
const (
	ResultFeasible   = "feasible"
	ResultInfeasible = "infeasible"
	ResultError      = "error"
)

// EvaluationObserver is notified after every fitness evaluation.
// ticks is zero unless a simulation ran to completion.
type EvaluationObserver interface {
	ObserveEvaluation(result string, ticks int)
}

// Evaluator scores chromosomes by decoding them against a registry and
// replaying the registry's tasks on the decoded network.
// It mutates the registry tasks and is not safe for concurrent use.
type Evaluator struct {
	registry   *framework.Registry
	simulator  *offloading.Simulator
	constraint framework.Constraint
	objectives []framework.ObjectiveFunc

	Observer EvaluationObserver
	logger   klog.Logger
}

// NewEvaluator creates an evaluator for the default objectives.
// A nil constraint accepts every network.
func NewEvaluator(logger klog.Logger, registry *framework.Registry, simulator *offloading.Simulator, constraint framework.Constraint) *Evaluator {
	if constraint == nil {
		constraint = func(framework.Network) bool { return true }
	}
	return &Evaluator{
		registry:   registry,
		simulator:  simulator,
		constraint: constraint,
		objectives: Default(),
		logger:     logger,
	}
}

// Penalty is the objective value assigned to infeasible networks
func Penalty(objectives int) framework.ObjectiveSpacePoint {
	point := make(framework.ObjectiveSpacePoint, objectives)
	for i := range point {
		point[i] = math.Inf(1)
	}
	return point
}

// Evaluate returns [max computation time, max migration time] for the chromosome
func (e *Evaluator) Evaluate(chromosome topology.Chromosome) (framework.ObjectiveSpacePoint, error) {
	network, err := topology.Decode(chromosome, e.registry)
	if err != nil {
		e.observe(ResultError, 0)
		return nil, err
	}

	if !e.constraint(network) {
		e.logger.V(4).Info("Network violates constraints", "accessPoints", network.AccessPoints(), "edgeServers", network.EdgeServers())
		e.observe(ResultInfeasible, 0)
		return Penalty(len(e.objectives)), nil
	}

	tasks := e.registry.Tasks()
	e.registry.ResetTasks()
	network.Reset()

	res, err := e.simulator.Run(network, tasks)
	if err != nil {
		e.observe(ResultError, 0)
		return nil, fmt.Errorf("simulating %s: %w", chromosome, err)
	}

	point := make(framework.ObjectiveSpacePoint, len(e.objectives))
	for i, objective := range e.objectives {
		point[i] = objective(tasks)
	}
	e.logger.V(5).Info("Evaluated network", "ticks", res.Ticks, "migrations", res.Migrations, "historyResets", res.HistoryResets, "value", point)
	e.observe(ResultFeasible, res.Ticks)
	return point, nil
}

func (e *Evaluator) observe(result string, ticks int) {
	if e.Observer != nil {
		e.Observer.ObserveEvaluation(result, ticks)
	}
}
