/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package topologysearch

import (
	"fmt"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/constraints"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/objectives"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/offloading"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/warmstart"
)

// TopologyProblem is the RSU/edge server placement problem of one registry.
// It owns the registry it evaluates against and is not safe for concurrent use.
type TopologyProblem struct {
	name      string
	generator *warmstart.Generator
	evaluator *objectives.Evaluator
	counter   *evaluationCounter
}

// NewTopologyProblem wires the simulator, constraints, evaluator and random
// generator for a registry. All randomness is drawn from rng. The observer may be nil.
func NewTopologyProblem(logger klog.Logger, args *v1alpha1.SearchArgs, registry *framework.Registry, rng *rand.Rand, observer objectives.EvaluationObserver) *TopologyProblem {
	area := framework.Area{Width: args.AreaWidth, Height: args.AreaHeight}

	simulator := offloading.NewSimulator(rng)
	simulator.MaxTicks = args.MaxSimulationTicks
	if simulator.MaxTicks < 0 {
		simulator.MaxTicks = 0
	}
	if logger.V(6).Enabled() {
		simulator.Recorder = eventLogger{logger: logger}
	}

	tasks := registry.Tasks()
	constraint := constraints.CombineConstraints(
		append(constraints.ServiceableConstraints(tasks), constraints.AreaConstraint(area))...,
	)

	counter := &evaluationCounter{next: observer}
	evaluator := objectives.NewEvaluator(logger, registry, simulator, constraint)
	evaluator.Observer = counter

	generator := warmstart.NewGenerator(logger, warmstart.Config{
		Registry:            registry,
		Area:                area,
		IncludeCurrentState: args.IncludeCurrentState,
	}, rng)

	return &TopologyProblem{
		name:      fmt.Sprintf("RSUPlacement-%dRSU-%dES-%dTask", len(registry.RSUs()), len(registry.EdgeServers()), len(tasks)),
		generator: generator,
		evaluator: evaluator,
		counter:   counter,
	}
}

func (tp *TopologyProblem) Name() string {
	return tp.name
}

func (tp *TopologyProblem) Initialize(popSize int) ([]topology.Chromosome, error) {
	return tp.generator.GenerateInitialPopulation(popSize)
}

func (tp *TopologyProblem) Evaluate(chromosome topology.Chromosome) (framework.ObjectiveSpacePoint, error) {
	return tp.evaluator.Evaluate(chromosome)
}

// Random returns the chromosome of a fresh random network
func (tp *TopologyProblem) Random() (topology.Chromosome, error) {
	network, err := tp.generator.RandomNetwork()
	if err != nil {
		return nil, err
	}
	return topology.Encode(network), nil
}

// Evaluations returns the number of evaluations so far, feasible or not
func (tp *TopologyProblem) Evaluations() int64 {
	return tp.counter.count
}

// evaluationCounter counts evaluations and forwards them to an optional observer
type evaluationCounter struct {
	count int64
	next  objectives.EvaluationObserver
}

func (c *evaluationCounter) ObserveEvaluation(result string, ticks int) {
	c.count++
	if c.next != nil {
		c.next.ObserveEvaluation(result, ticks)
	}
}

// eventLogger logs every simulator transition at high verbosity
type eventLogger struct {
	logger klog.Logger
}

var _ offloading.EventRecorder = eventLogger{}

func (e eventLogger) Placed(tick int, task *framework.Task, rsu *framework.RSU, serviceTime int) {
	e.logger.V(6).Info("Task placed", "tick", tick, "task", task.ID, "rsu", rsu.ID, "serviceTime", serviceTime)
}

func (e eventLogger) Migrated(tick int, task *framework.Task, from, to *framework.RSU, migrationTime int) {
	fromID := ""
	if from != nil {
		fromID = from.ID
	}
	e.logger.V(6).Info("Task migrating", "tick", tick, "task", task.ID, "from", fromID, "to", to.ID, "migrationTime", migrationTime)
}

func (e eventLogger) Released(tick int, rsu *framework.RSU) {
	e.logger.V(6).Info("RSU released", "tick", tick, "rsu", rsu.ID)
}
