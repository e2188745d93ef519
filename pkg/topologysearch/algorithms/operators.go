package algorithms

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"k8s.io/utils/set"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

// ErrLayoutMismatch is returned when parents do not share a gene layout
var ErrLayoutMismatch = errors.New("parents have different gene layouts")

// Crossover creates two children by swapping the tails of the parents after a
// cut point drawn uniformly from [0, len-1]. Link genes that end up sharing an
// RSU are repaired by moving the later one to an RSU without an edge server.
func Crossover(p1, p2 topology.Chromosome, rng *rand.Rand) (topology.Chromosome, topology.Chromosome, error) {
	if !topology.SameLayout(p1, p2) {
		return nil, nil, fmt.Errorf("crossover of %d and %d genes: %w", len(p1), len(p2), ErrLayoutMismatch)
	}
	if len(p1) == 0 {
		return p1.Clone(), p2.Clone(), nil
	}

	point := rng.Intn(len(p1))
	child1 := make(topology.Chromosome, len(p1))
	child2 := make(topology.Chromosome, len(p2))
	copy(child1, p1[:point])
	copy(child2, p2[:point])
	copy(child1[point:], p2[point:])
	copy(child2[point:], p1[point:])

	if err := repairLinks(child1, rng); err != nil {
		return nil, nil, err
	}
	if err := repairLinks(child2, rng); err != nil {
		return nil, nil, err
	}
	return child1, child2, nil
}

func repairLinks(c topology.Chromosome, rng *rand.Rand) error {
	placed := set.New(c.PlacedRSUs()...)
	linked := c.LinkedRSUs()
	seen := set.New[string]()

	for i := range c {
		if c[i].Kind != topology.LinkKind {
			continue
		}
		if !seen.Has(c[i].RSUID) {
			seen.Insert(c[i].RSUID)
			continue
		}
		free := placed.Difference(linked).SortedList()
		if len(free) == 0 {
			return fmt.Errorf("no RSU left for edge server %q: %w", c[i].ESID, topology.ErrMalformedChromosome)
		}
		c[i].RSUID = free[rng.Intn(len(free))]
		linked.Insert(c[i].RSUID)
		seen.Insert(c[i].RSUID)
	}
	return nil
}

// Mutate returns a copy of the chromosome with one gene changed. A placement
// gene moves to random integer coordinates inside the area. A link gene moves
// its edge server to a random RSU that has none; when every placed RSU already
// has an edge server the copy is returned unchanged.
func Mutate(chromosome topology.Chromosome, area framework.Area, rng *rand.Rand) topology.Chromosome {
	mutated := chromosome.Clone()
	if len(mutated) == 0 {
		return mutated
	}

	g := &mutated[rng.Intn(len(mutated))]
	switch g.Kind {
	case topology.PlacementKind:
		g.X = float64(rng.Intn(int(area.Width) + 1))
		g.Y = float64(rng.Intn(int(area.Height) + 1))
	case topology.LinkKind:
		free := set.New(mutated.PlacedRSUs()...).Difference(mutated.LinkedRSUs()).SortedList()
		if len(free) > 0 {
			g.RSUID = free[rng.Intn(len(free))]
		}
	}
	return mutated
}
