package algorithms_test

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

func individuals(points ...[]float64) []*algorithms.Individual {
	pop := make([]*algorithms.Individual, len(points))
	for i, p := range points {
		pop[i] = algorithms.NewIndividual(nil, framework.ObjectiveSpacePoint(p))
	}
	return pop
}

func randomPopulation(rng *rand.Rand, size int) []*algorithms.Individual {
	pop := make([]*algorithms.Individual, size)
	for i := range pop {
		// small integer grid so that ties and equal points are common
		pop[i] = algorithms.NewIndividual(nil, framework.ObjectiveSpacePoint{
			float64(rng.Intn(6)), float64(rng.Intn(6)),
		})
	}
	return pop
}

func TestDominates(t *testing.T) {
	testCases := []struct {
		name string
		a, b []float64
		want bool
	}{
		{name: "BetterOnBoth", a: []float64{1, 1}, b: []float64{2, 2}, want: true},
		{name: "BetterOnOne", a: []float64{1, 2}, b: []float64{2, 2}, want: true},
		{name: "Equal", a: []float64{2, 2}, b: []float64{2, 2}, want: false},
		{name: "TradeOff", a: []float64{1, 3}, b: []float64{2, 2}, want: false},
		{name: "Worse", a: []float64{3, 3}, b: []float64{2, 2}, want: false},
		{name: "FeasibleOverPenalty", a: []float64{100, 100}, b: []float64{math.Inf(1), math.Inf(1)}, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pop := individuals(tc.a, tc.b)
			if got := algorithms.Dominates(pop[0], pop[1]); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDominatesIsStrictPartialOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pop := randomPopulation(rng, 60)

	for _, a := range pop {
		if algorithms.Dominates(a, a) {
			t.Fatalf("%v dominates itself", a.Value)
		}
		for _, b := range pop {
			if algorithms.Dominates(a, b) && algorithms.Dominates(b, a) {
				t.Fatalf("%v and %v dominate each other", a.Value, b.Value)
			}
		}
	}
}

func TestNonDominatedSortPartition(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pop := randomPopulation(rng, 40)

		fronts, err := algorithms.NonDominatedSort(pop)
		if err != nil {
			t.Fatalf("NonDominatedSort: %v", err)
		}

		seen := make(map[*algorithms.Individual]int)
		for k, front := range fronts {
			if len(front) == 0 {
				t.Fatalf("seed %d: front %d is empty", seed, k+1)
			}
			for _, ind := range front {
				seen[ind]++
				if ind.Rank != k+1 {
					t.Errorf("seed %d: rank %d in front %d", seed, ind.Rank, k+1)
				}
			}
		}
		if len(seen) != len(pop) {
			t.Fatalf("seed %d: %d individuals sorted, want %d", seed, len(seen), len(pop))
		}
		for ind, n := range seen {
			if n != 1 {
				t.Errorf("seed %d: %v appears in %d fronts", seed, ind.Value, n)
			}
		}

		for k, front := range fronts {
			for _, a := range front {
				for _, b := range front {
					if algorithms.Dominates(a, b) {
						t.Errorf("seed %d: front %d has %v dominating %v", seed, k+1, a.Value, b.Value)
					}
				}
				// nothing in earlier fronts is dominated by a
				for _, earlier := range fronts[:k] {
					for _, b := range earlier {
						if algorithms.Dominates(a, b) {
							t.Errorf("seed %d: %v in front %d dominates %v", seed, a.Value, k+1, b.Value)
						}
					}
				}
				if k == 0 {
					continue
				}
				dominatedByPrevious := false
				for _, b := range fronts[k-1] {
					if algorithms.Dominates(b, a) {
						dominatedByPrevious = true
						break
					}
				}
				if !dominatedByPrevious {
					t.Errorf("seed %d: %v in front %d is not dominated by front %d", seed, a.Value, k+1, k)
				}
			}
		}
	}
}

func TestNonDominatedSortEmpty(t *testing.T) {
	if _, err := algorithms.NonDominatedSort(nil); !errors.Is(err, algorithms.ErrEmptyPopulation) {
		t.Errorf("Expected ErrEmptyPopulation, got %v", err)
	}
}

func TestCrowdingDistance(t *testing.T) {
	front := individuals(
		[]float64{0, 10},
		[]float64{2, 6},
		[]float64{5, 5},
		[]float64{10, 0},
	)
	byValue := map[float64]*algorithms.Individual{}
	for _, ind := range front {
		byValue[ind.Value[0]] = ind
	}

	if err := algorithms.CrowdingDistance(front); err != nil {
		t.Fatalf("CrowdingDistance: %v", err)
	}

	if !math.IsInf(byValue[0].Distance, 1) || !math.IsInf(byValue[10].Distance, 1) {
		t.Errorf("boundary distances = %v, %v, want +Inf", byValue[0].Distance, byValue[10].Distance)
	}
	// (5-0)/10 + (10-5)/10
	if got := byValue[2].Distance; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected 1.0, got %v", got)
	}
	// (10-2)/10 + (6-0)/10
	if got := byValue[5].Distance; math.Abs(got-1.4) > 1e-9 {
		t.Errorf("Expected 1.4, got %v", got)
	}
}

func TestCrowdingDistanceFlatObjective(t *testing.T) {
	front := individuals(
		[]float64{1, 7},
		[]float64{2, 7},
		[]float64{3, 7},
	)
	if err := algorithms.CrowdingDistance(front); err != nil {
		t.Fatalf("CrowdingDistance: %v", err)
	}
	for _, ind := range front {
		if math.IsNaN(ind.Distance) {
			t.Fatalf("distance of %v is NaN", ind.Value)
		}
	}
	if got := front[1].Distance; got != 1.0 {
		t.Errorf("interior distance = %v, want 1.0 from the first objective only", got)
	}
}

func TestCrowdingDistancePenalizedFront(t *testing.T) {
	inf := math.Inf(1)
	front := individuals([]float64{inf, inf}, []float64{inf, inf}, []float64{inf, inf})
	if err := algorithms.CrowdingDistance(front); err != nil {
		t.Fatalf("CrowdingDistance: %v", err)
	}
	for _, ind := range front {
		if math.IsNaN(ind.Distance) {
			t.Fatalf("distance of penalized individual is NaN")
		}
	}
}

func TestCrowdingDistanceEmpty(t *testing.T) {
	if err := algorithms.CrowdingDistance(nil); !errors.Is(err, algorithms.ErrEmptyFront) {
		t.Errorf("Expected ErrEmptyFront, got %v", err)
	}
}

func TestTournamentSelectSingleContender(t *testing.T) {
	pop := individuals([]float64{4, 2})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		got, err := algorithms.TournamentSelect(pop, 1, rng)
		if err != nil {
			t.Fatalf("TournamentSelect: %v", err)
		}
		if got != pop[0] {
			t.Fatalf("Expected the only individual, got %v", got.Value)
		}
	}
}

func TestTournamentSelectPrefersDominant(t *testing.T) {
	pop := individuals([]float64{1, 1}, []float64{5, 5}, []float64{6, 7})
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		got, err := algorithms.TournamentSelect(pop, len(pop), rng)
		if err != nil {
			t.Fatalf("TournamentSelect: %v", err)
		}
		if got != pop[0] {
			t.Fatalf("Expected %v to win, got %v", pop[0].Value, got.Value)
		}
	}
}

func TestTournamentSelectLeavesDistances(t *testing.T) {
	pop := individuals([]float64{0, 4}, []float64{1, 3}, []float64{2, 2}, []float64{4, 0})
	for i, ind := range pop {
		ind.Distance = float64(i)
	}
	rng := rand.New(rand.NewSource(5))
	if _, err := algorithms.TournamentSelect(pop, 3, rng); err != nil {
		t.Fatalf("TournamentSelect: %v", err)
	}
	for i, ind := range pop {
		if ind.Distance != float64(i) {
			t.Errorf("individual %d distance changed to %v", i, ind.Distance)
		}
	}
}

func TestTournamentSelectInvalidSize(t *testing.T) {
	pop := individuals([]float64{1, 1}, []float64{2, 2})
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{0, -1, 3} {
		if _, err := algorithms.TournamentSelect(pop, size, rng); !errors.Is(err, algorithms.ErrInvalidTournament) {
			t.Errorf("size %d: Expected ErrInvalidTournament, got %v", size, err)
		}
	}
	if _, err := algorithms.TournamentSelect(nil, 1, rng); !errors.Is(err, algorithms.ErrInvalidTournament) {
		t.Errorf("empty population: Expected ErrInvalidTournament, got %v", err)
	}
}
