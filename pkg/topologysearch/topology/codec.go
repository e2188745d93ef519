package topology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

var (
	ErrUnknownRSU          = errors.New("unknown RSU")
	ErrUnknownES           = errors.New("unknown edge server")
	ErrMalformedChromosome = errors.New("malformed chromosome")
)

// Encode flattens a network into a chromosome. Two structurally equal networks
// always encode to the same chromosome.
func Encode(network framework.Network) Chromosome {
	rsus := make([]*framework.RSU, len(network))
	copy(rsus, network)
	sort.SliceStable(rsus, func(i, j int) bool {
		return rsus[i].ID < rsus[j].ID
	})

	esRSUs := make([]*framework.RSU, 0, len(network))
	for _, rsu := range rsus {
		if !rsu.IsAccessPoint() {
			esRSUs = append(esRSUs, rsu)
		}
	}
	sort.SliceStable(esRSUs, func(i, j int) bool {
		return esRSUs[i].ES.ID < esRSUs[j].ES.ID
	})

	chromosome := make(Chromosome, 0, len(rsus)+len(esRSUs))
	for _, rsu := range rsus {
		chromosome = append(chromosome, Placement(rsu.ID, rsu.X, rsu.Y))
	}
	for _, rsu := range esRSUs {
		chromosome = append(chromosome, Link(rsu.ES.ID, rsu.ID))
	}
	return chromosome
}

// Decode rebuilds the network described by a chromosome. RSU and ES identities
// are resolved against the registry. Every registry RSU must be placed exactly
// once, while the registry may hold edge servers no link gene references. The returned RSUs are fresh values owned by the
// network, so decoding never alters the registry or previously decoded networks.
func Decode(chromosome Chromosome, registry *framework.Registry) (framework.Network, error) {
	if err := chromosome.Validate(); err != nil {
		return nil, err
	}

	network := make(framework.Network, 0, len(chromosome))
	byID := make(map[string]*framework.RSU, len(chromosome))

	for _, g := range chromosome {
		if g.Kind != PlacementKind {
			continue
		}
		base, ok := registry.RSU(g.RSUID)
		if !ok {
			return nil, fmt.Errorf("placement gene for RSU %q: %w", g.RSUID, ErrUnknownRSU)
		}
		rsu := &framework.RSU{
			ID:  base.ID,
			X:   g.X,
			Y:   g.Y,
			DTR: base.DTR,
		}
		network = append(network, rsu)
		byID[rsu.ID] = rsu
	}
	if len(network) != len(registry.RSUs()) {
		return nil, fmt.Errorf("chromosome places %d RSUs, registry holds %d: %w", len(network), len(registry.RSUs()), ErrMalformedChromosome)
	}

	// every RSU starts as an access point; only link genes attach servers
	for _, rsu := range network {
		rsu.ES = nil
	}

	for _, g := range chromosome {
		if g.Kind != LinkKind {
			continue
		}
		es, ok := registry.ES(g.ESID)
		if !ok {
			return nil, fmt.Errorf("link gene (%s, %s): %w", g.ESID, g.RSUID, ErrUnknownES)
		}
		rsu, ok := byID[g.RSUID]
		if !ok {
			return nil, fmt.Errorf("link gene (%s, %s): %w", g.ESID, g.RSUID, ErrUnknownRSU)
		}
		rsu.ES = es
	}

	return network, nil
}
