// Package warmstart builds initial populations for the topology search.
//
// Every generated topology uses all RSUs and all edge servers of the registry,
// so the chromosomes share one gene layout and can be crossed over position by
// position. RSUs get random integer coordinates inside the area and each edge
// server is attached to a distinct random RSU; the remaining RSUs are access
// points.
package warmstart

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"
	"k8s.io/utils/set"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

// ErrTooManyServers is returned when edge servers outnumber RSUs
var ErrTooManyServers = errors.New("more edge servers than RSUs")

// Config contains configuration for random topology generation
type Config struct {
	Registry *framework.Registry
	Area     framework.Area
	// IncludeCurrentState seeds the population with the topology as loaded,
	// when it links every edge server
	IncludeCurrentState bool
}

// Generator creates random topologies from a registry
type Generator struct {
	config Config
	rng    *rand.Rand
	logger klog.Logger
}

// NewGenerator creates a new Generator instance
func NewGenerator(logger klog.Logger, config Config, rng *rand.Rand) *Generator {
	return &Generator{config: config, rng: rng, logger: logger}
}

// RandomNetwork returns a fresh network of every registry RSU at random
// coordinates with every edge server linked to a distinct random RSU
func (g *Generator) RandomNetwork() (framework.Network, error) {
	rsus := g.config.Registry.RSUs()
	ess := g.config.Registry.EdgeServers()
	if len(ess) > len(rsus) {
		return nil, fmt.Errorf("%d edge servers for %d RSUs: %w", len(ess), len(rsus), ErrTooManyServers)
	}

	network := make(framework.Network, len(rsus))
	for i, base := range rsus {
		network[i] = &framework.RSU{
			ID:  base.ID,
			X:   float64(g.rng.Intn(int(g.config.Area.Width) + 1)),
			Y:   float64(g.rng.Intn(int(g.config.Area.Height) + 1)),
			DTR: base.DTR,
		}
	}

	order := g.rng.Perm(len(network))
	for i, es := range ess {
		network[order[i]].ES = es
	}
	return network, nil
}

// GenerateInitialPopulation creates popSize chromosomes with a shared layout
func (g *Generator) GenerateInitialPopulation(popSize int) ([]topology.Chromosome, error) {
	population := make([]topology.Chromosome, 0, popSize)

	if g.config.IncludeCurrentState && popSize > 0 {
		current := topology.Encode(g.config.Registry.Network())
		_, links := current.Counts()
		if links == len(g.config.Registry.EdgeServers()) {
			population = append(population, current)
			g.logger.V(2).Info("Added loaded topology as baseline")
		} else {
			g.logger.Info("Loaded topology leaves edge servers unlinked, not seeding it", "linked", links, "edgeServers", len(g.config.Registry.EdgeServers()))
		}
	}

	for len(population) < popSize {
		network, err := g.RandomNetwork()
		if err != nil {
			return nil, err
		}
		population = append(population, topology.Encode(network))
	}

	unique := set.New[string]()
	for _, c := range population {
		unique.Insert(c.String())
	}
	g.logger.V(2).Info("Generated initial population", "size", len(population), "unique", unique.Len())
	return population, nil
}
