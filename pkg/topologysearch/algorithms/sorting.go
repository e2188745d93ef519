package algorithms

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

var (
	ErrEmptyPopulation   = errors.New("population is empty")
	ErrEmptyFront        = errors.New("front is empty")
	ErrInvalidTournament = errors.New("tournament size must be between 1 and the population size")
)

// Individual wraps a chromosome in the population
// with Rank and Distance fields. Value stores the value in
// the objective space for the chromosome (this is used when comparing
// individuals). Rank 1 is the first front.
type Individual struct {
	Chromosome topology.Chromosome
	Value      framework.ObjectiveSpacePoint

	Rank     int
	Distance float64
}

func NewIndividual(chromosome topology.Chromosome, val framework.ObjectiveSpacePoint) *Individual {
	return &Individual{
		Chromosome: chromosome,
		Value:      val,
	}
}

// Dominates checks if individual a dominates individual b
func Dominates(a, b *Individual) bool {
	better := false
	for i := 0; i < len(a.Value); i++ {
		if a.Value[i] > b.Value[i] {
			return false
		}
		if a.Value[i] < b.Value[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the population into fronts and sets Rank on every individual
func NonDominatedSort(population []*Individual) ([][]*Individual, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}

	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	for i := range population {
		for j := range population {
			if i == j {
				continue
			}
			if Dominates(population[i], population[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(population[j], population[i]) {
				domCount[i]++
			}
		}
	}

	var current []int
	for i := range population {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	var fronts [][]*Individual
	for len(current) > 0 {
		rank := len(fronts) + 1
		front := make([]*Individual, len(current))
		var next []int
		for k, idx := range current {
			population[idx].Rank = rank
			front[k] = population[idx]
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					next = append(next, d)
				}
			}
		}
		fronts = append(fronts, front)
		current = next
	}

	return fronts, nil
}

// CrowdingDistance calculates crowding distance for individuals in a front.
// The front slice is reordered.
func CrowdingDistance(front []*Individual) error {
	if len(front) == 0 {
		return ErrEmptyFront
	}
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return nil
	}

	numObjectives := len(front[0].Value)
	for i := range front {
		front[i].Distance = 0
	}

	for m := 0; m < numObjectives; m++ {
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Value[m] < front[j].Value[m]
		})

		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)

		// flat or penalized objectives add nothing
		objectiveRange := front[len(front)-1].Value[m] - front[0].Value[m]
		if objectiveRange == 0 || math.IsNaN(objectiveRange) || math.IsInf(objectiveRange, 0) {
			continue
		}

		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Value[m] - front[i-1].Value[m]) / objectiveRange
		}
	}
	return nil
}

// TournamentSelect draws size distinct individuals and returns the winner.
// Dominance decides first; between mutually non-dominated contenders the larger
// crowding distance, computed over the sample only, wins. The population's own
// Distance fields are left untouched.
func TournamentSelect(population []*Individual, size int, rng *rand.Rand) (*Individual, error) {
	if size < 1 || size > len(population) {
		return nil, ErrInvalidTournament
	}

	picks := rng.Perm(len(population))[:size]
	contenders := make([]*Individual, size)
	origin := make(map[*Individual]*Individual, size)
	for i, idx := range picks {
		c := *population[idx]
		contenders[i] = &c
		origin[&c] = population[idx]
	}

	sample := append([]*Individual(nil), contenders...)
	if err := CrowdingDistance(sample); err != nil {
		return nil, err
	}

	best := contenders[0]
	for _, c := range contenders[1:] {
		if Dominates(c, best) {
			best = c
		} else if !Dominates(best, c) && c.Distance > best.Distance {
			best = c
		}
	}
	return origin[best], nil
}

// GetParetoFront extracts the Pareto front (first non-dominated front) from a population
func GetParetoFront(population []*Individual) ([]*Individual, error) {
	fronts, err := NonDominatedSort(population)
	if err != nil {
		return nil, err
	}
	return fronts[0], nil
}

// Values returns the objective values of the individuals in order
func Values(individuals []*Individual) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(individuals))
	for i, ind := range individuals {
		points[i] = ind.Value
	}
	return points
}
