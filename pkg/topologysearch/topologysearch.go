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
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/metrics"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/objectives"
)

const Name = "TopologySearch"

// Searcher runs a multi-objective search for RSU placements and edge server links
type Searcher struct {
	logger   klog.Logger
	args     *v1alpha1.SearchArgs
	registry *framework.Registry
	metrics  *metrics.Recorder
}

// Result is the outcome of one search run
type Result struct {
	// Population is the final population with rank and crowding distance set
	Population []*algorithms.Individual
	// Front holds the distinct feasible first-front individuals ordered by objectives
	Front       []*algorithms.Individual
	Generations int
	Evaluations int64
}

// New builds a searcher from its arguments. The registry is cloned on every
// run, so the caller's entities are never mutated.
func New(ctx context.Context, args runtime.Object, registry *framework.Registry) (*Searcher, error) {
	searchArgs, ok := args.(*v1alpha1.SearchArgs)
	if !ok {
		return nil, fmt.Errorf("want args to be of type SearchArgs, got %T", args)
	}
	if err := ValidateSearchArgs(searchArgs); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	return &Searcher{
		logger:   klog.FromContext(ctx).WithValues("search", Name),
		args:     searchArgs,
		registry: registry,
	}, nil
}

// WithMetrics reports evaluations and generations to the recorder
func (s *Searcher) WithMetrics(recorder *metrics.Recorder) *Searcher {
	s.metrics = recorder
	return s
}

// Args returns the arguments the searcher runs with
func (s *Searcher) Args() *v1alpha1.SearchArgs {
	return s.args
}

// Run searches for Pareto-optimal topologies of the registry
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	logger := s.logger
	s.printSearchConfig(logger)

	registry := s.registry.Clone()
	rng := rand.New(rand.NewSource(uint64(s.args.Seed)))
	area := framework.Area{Width: s.args.AreaWidth, Height: s.args.AreaHeight}

	var observer objectives.EvaluationObserver
	if s.metrics != nil {
		observer = s.metrics
	}
	problem := NewTopologyProblem(logger, s.args, registry, rng, observer)

	nsga2 := algorithms.NewNSGAII(algorithms.NSGA2Config{
		PopulationSize:       s.args.PopulationSize,
		MaxGenerations:       s.args.MaxGenerations,
		CrossoverProbability: s.args.CrossoverProbability,
		MutationProbability:  s.args.MutationProbability,
		TournamentSize:       s.args.TournamentSize,
		Area:                 area,
	}, problem, rng)

	generations := 0
	nsga2.Observer = func(generation int, population []*algorithms.Individual) {
		generations = generation
		if s.metrics != nil {
			s.metrics.ObserveGeneration(countFirstFront(population))
		}
	}

	start := time.Now()
	population, err := nsga2.Run(klog.NewContext(ctx, logger))
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", algorithms.Name, err)
	}

	front, err := algorithms.GetParetoFront(population)
	if err != nil {
		return nil, err
	}
	front = s.deduplicateResults(feasible(front))
	sortByObjectives(front)

	logger.Info("Search complete",
		"duration", time.Since(start),
		"generations", generations,
		"evaluations", problem.Evaluations(),
		"paretoOptimal", len(front))
	s.displayTopResults(logger, front)

	return &Result{
		Population:  population,
		Front:       front,
		Generations: generations,
		Evaluations: problem.Evaluations(),
	}, nil
}

func (s *Searcher) printSearchConfig(logger klog.Logger) {
	logger.Info("Search configuration",
		"rsus", len(s.registry.RSUs()),
		"edgeServers", len(s.registry.EdgeServers()),
		"tasks", len(s.registry.Tasks()),
		"populationSize", s.args.PopulationSize,
		"maxGenerations", s.args.MaxGenerations,
		"crossoverProbability", s.args.CrossoverProbability,
		"mutationProbability", s.args.MutationProbability,
		"tournamentSize", s.args.TournamentSize,
		"seed", s.args.Seed)
}

// deduplicateResults drops individuals whose chromosome was already seen.
// Distinct chromosomes that decode to the same objective values are kept.
func (s *Searcher) deduplicateResults(results []*algorithms.Individual) []*algorithms.Individual {
	if len(results) == 0 {
		return results
	}

	seen := make(map[string]bool)
	filtered := make([]*algorithms.Individual, 0, len(results))
	for _, result := range results {
		key := result.Chromosome.String()
		if seen[key] {
			s.logger.V(3).Info("Skipping duplicate solution", "value", result.Value)
			continue
		}
		seen[key] = true
		filtered = append(filtered, result)
	}
	return filtered
}

func (s *Searcher) displayTopResults(logger klog.Logger, results []*algorithms.Individual) {
	count := s.args.TopSolutions
	if len(results) < count {
		count = len(results)
	}

	logger.Info("Top topologies", "displaying", count, "totalParetoOptimal", len(results))
	for i := 0; i < count; i++ {
		r := results[i]
		logger.Info("Solution",
			"rank", i+1,
			"maxComputationTime", r.Value[0],
			"maxMigrationTime", r.Value[1])
		logger.V(2).Info("Solution genes", "rank", i+1, "chromosome", r.Chromosome.String())
	}
}

func feasible(individuals []*algorithms.Individual) []*algorithms.Individual {
	out := make([]*algorithms.Individual, 0, len(individuals))
	for _, ind := range individuals {
		ok := true
		for _, v := range ind.Value {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, ind)
		}
	}
	return out
}

func sortByObjectives(individuals []*algorithms.Individual) {
	sort.SliceStable(individuals, func(i, j int) bool {
		a, b := individuals[i].Value, individuals[j].Value
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

func countFirstFront(population []*algorithms.Individual) int {
	count := 0
	for _, ind := range population {
		if ind.Rank == 1 {
			count++
		}
	}
	return count
}
