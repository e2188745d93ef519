package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

const (
	Name = "NSGA-II"
)

// Problem is a topology search instance the algorithm can optimize
type Problem interface {
	Name() string
	// Initialize returns popSize chromosomes sharing one gene layout
	Initialize(popSize int) ([]topology.Chromosome, error)
	Evaluate(chromosome topology.Chromosome) (framework.ObjectiveSpacePoint, error)
}

// GenerationObserver is called after every generation with the selected population
type GenerationObserver func(generation int, population []*Individual)

// NSGA2Config holds configuration parameters for NSGA-II
type NSGA2Config struct {
	PopulationSize       int
	MaxGenerations       int
	CrossoverProbability float64
	MutationProbability  float64
	TournamentSize       int
	// Area bounds the coordinates produced by mutation
	Area framework.Area
}

// NSGAII runs NSGA-II on a Problem with a caller-owned random source
type NSGAII struct {
	PopSize        int
	NumGenerations int
	Problem        Problem
	CrossoverRate  float64
	MutationRate   float64
	TournamentSize int
	Area           framework.Area

	Observer GenerationObserver
	rng      *rand.Rand
}

// NewNSGAII creates a new instance of NSGA-II with given parameters
func NewNSGAII(config NSGA2Config, problem Problem, rng *rand.Rand) *NSGAII {
	return &NSGAII{
		PopSize:        config.PopulationSize,
		NumGenerations: config.MaxGenerations,
		Problem:        problem,
		CrossoverRate:  config.CrossoverProbability,
		MutationRate:   config.MutationProbability,
		TournamentSize: config.TournamentSize,
		Area:           config.Area,
		rng:            rng,
	}
}

func (n *NSGAII) evaluate(chromosome topology.Chromosome) (*Individual, error) {
	val, err := n.Problem.Evaluate(chromosome)
	if err != nil {
		return nil, err
	}
	return NewIndividual(chromosome, val), nil
}

// Run executes the NSGA-II algorithm and returns the final population with
// Rank and Distance set. Errors from the problem abort the run.
func (n *NSGAII) Run(ctx context.Context) ([]*Individual, error) {
	logger := klog.FromContext(ctx).WithValues("algorithm", Name, "problem", n.Problem.Name())
	startTime := time.Now()

	if n.PopSize < 1 {
		return nil, fmt.Errorf("population size %d: %w", n.PopSize, ErrEmptyPopulation)
	}
	if n.TournamentSize < 1 || n.TournamentSize > n.PopSize {
		return nil, fmt.Errorf("tournament size %d with population %d: %w", n.TournamentSize, n.PopSize, ErrInvalidTournament)
	}

	initPop, err := n.Problem.Initialize(n.PopSize)
	if err != nil {
		return nil, fmt.Errorf("initializing population: %w", err)
	}
	if len(initPop) != n.PopSize {
		return nil, fmt.Errorf("could not initialize population with PopSize %d, got %d", n.PopSize, len(initPop))
	}

	logger.Info("Starting evolution",
		"populationSize", n.PopSize,
		"generations", n.NumGenerations,
		"crossoverRate", n.CrossoverRate,
		"mutationRate", n.MutationRate,
		"tournamentSize", n.TournamentSize)

	population := make([]*Individual, n.PopSize)
	for i, chromosome := range initPop {
		if population[i], err = n.evaluate(chromosome); err != nil {
			return nil, fmt.Errorf("evaluating initial individual %d: %w", i, err)
		}
	}
	if err := rankAndCrowd(population); err != nil {
		return nil, err
	}
	logger.V(2).Info("Initial population evaluated", "infeasible", countInfeasible(population))

	for gen := 0; gen < n.NumGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offspring := make([]*Individual, 0, n.PopSize)
		for len(offspring) < n.PopSize {
			children, err := n.generateOffspringPair(population)
			if err != nil {
				return nil, fmt.Errorf("generation %d: %w", gen+1, err)
			}
			for _, child := range children {
				if len(offspring) < n.PopSize {
					offspring = append(offspring, child)
				}
			}
		}

		combined := make([]*Individual, 0, 2*n.PopSize)
		combined = append(combined, population...)
		combined = append(combined, offspring...)

		population, err = n.selectSurvivors(combined)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen+1, err)
		}

		if gen%10 == 0 || gen == n.NumGenerations-1 {
			logger.V(2).Info("Generation complete",
				"generation", gen+1,
				"firstFront", countRank(population, 1),
				"infeasible", countInfeasible(population))
		}
		if n.Observer != nil {
			n.Observer(gen+1, population)
		}
	}

	elapsed := time.Since(startTime)
	logger.Info("Evolution complete",
		"duration", elapsed,
		"firstFront", countRank(population, 1),
		"infeasible", countInfeasible(population))
	if n.NumGenerations > 0 {
		logger.V(2).Info("Timing", "perGeneration", elapsed/time.Duration(n.NumGenerations))
	}

	return population, nil
}

// generateOffspringPair selects two parents and returns their evaluated children
func (n *NSGAII) generateOffspringPair(population []*Individual) ([]*Individual, error) {
	parent1, err := TournamentSelect(population, n.TournamentSize, n.rng)
	if err != nil {
		return nil, err
	}
	parent2, err := TournamentSelect(population, n.TournamentSize, n.rng)
	if err != nil {
		return nil, err
	}

	child1, child2 := parent1.Chromosome.Clone(), parent2.Chromosome.Clone()
	if n.rng.Float64() < n.CrossoverRate {
		if child1, child2, err = Crossover(parent1.Chromosome, parent2.Chromosome, n.rng); err != nil {
			return nil, err
		}
	}
	if n.rng.Float64() < n.MutationRate {
		child1 = Mutate(child1, n.Area, n.rng)
	}
	if n.rng.Float64() < n.MutationRate {
		child2 = Mutate(child2, n.Area, n.rng)
	}

	ind1, err := n.evaluate(child1)
	if err != nil {
		return nil, err
	}
	ind2, err := n.evaluate(child2)
	if err != nil {
		return nil, err
	}
	return []*Individual{ind1, ind2}, nil
}

// selectSurvivors fills the next population front by front; the front that
// does not fit entirely is truncated by descending crowding distance
func (n *NSGAII) selectSurvivors(combined []*Individual) ([]*Individual, error) {
	fronts, err := NonDominatedSort(combined)
	if err != nil {
		return nil, err
	}

	population := make([]*Individual, 0, n.PopSize)
	for _, front := range fronts {
		if err := CrowdingDistance(front); err != nil {
			return nil, err
		}
		if len(population)+len(front) <= n.PopSize {
			population = append(population, front...)
			continue
		}
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Distance > front[j].Distance
		})
		population = append(population, front[:n.PopSize-len(population)]...)
		break
	}
	return population, nil
}

func rankAndCrowd(population []*Individual) error {
	fronts, err := NonDominatedSort(population)
	if err != nil {
		return err
	}
	for _, front := range fronts {
		if err := CrowdingDistance(front); err != nil {
			return err
		}
	}
	return nil
}

func countRank(population []*Individual, rank int) int {
	count := 0
	for _, ind := range population {
		if ind.Rank == rank {
			count++
		}
	}
	return count
}

func countInfeasible(population []*Individual) int {
	count := 0
	for _, ind := range population {
		for _, v := range ind.Value {
			if math.IsInf(v, 1) {
				count++
				break
			}
		}
	}
	return count
}
