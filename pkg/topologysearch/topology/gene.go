package topology

import (
	"fmt"
	"strings"

	"k8s.io/utils/set"
)

// GeneKind discriminates the two gene variants of a chromosome
type GeneKind int

const (
	// PlacementKind genes carry the position of one RSU
	PlacementKind GeneKind = iota
	// LinkKind genes attach one edge server to one RSU
	LinkKind
)

// Gene is a tagged variant. Placement genes use RSUID, X and Y.
// Link genes use ESID and RSUID.
type Gene struct {
	Kind  GeneKind
	RSUID string
	ESID  string
	X     float64
	Y     float64
}

// Placement builds a placement gene
func Placement(rsuID string, x, y float64) Gene {
	return Gene{Kind: PlacementKind, RSUID: rsuID, X: x, Y: y}
}

// Link builds a link gene
func Link(esID, rsuID string) Gene {
	return Gene{Kind: LinkKind, ESID: esID, RSUID: rsuID}
}

// Key identifies the slot a gene occupies: the RSU for placements, the ES for links
func (g Gene) Key() string {
	if g.Kind == LinkKind {
		return g.ESID
	}
	return g.RSUID
}

func (g Gene) String() string {
	if g.Kind == LinkKind {
		return fmt.Sprintf("(%s, %s)", g.ESID, g.RSUID)
	}
	return fmt.Sprintf("(%s, %g, %g)", g.RSUID, g.X, g.Y)
}

// Chromosome is the flat encoding of a topology: all placement genes sorted by
// RSU ID followed by all link genes sorted by ES ID.
type Chromosome []Gene

// Counts returns the number of placement and link genes
func (c Chromosome) Counts() (placements, links int) {
	for _, g := range c {
		if g.Kind == LinkKind {
			links++
		} else {
			placements++
		}
	}
	return placements, links
}

// PlacedRSUs returns the RSU IDs of the placement genes, in gene order
func (c Chromosome) PlacedRSUs() []string {
	ids := make([]string, 0, len(c))
	for _, g := range c {
		if g.Kind == PlacementKind {
			ids = append(ids, g.RSUID)
		}
	}
	return ids
}

// LinkedRSUs returns the set of RSU IDs referenced by link genes
func (c Chromosome) LinkedRSUs() set.Set[string] {
	linked := set.New[string]()
	for _, g := range c {
		if g.Kind == LinkKind {
			linked.Insert(g.RSUID)
		}
	}
	return linked
}

func (c Chromosome) Clone() Chromosome {
	return append(Chromosome(nil), c...)
}

func (c Chromosome) String() string {
	parts := make([]string, len(c))
	for i, g := range c {
		parts[i] = g.String()
	}
	return strings.Join(parts, ", ")
}

// Validate checks the structural invariants of the encoding without a registry
func (c Chromosome) Validate() error {
	placed := make(map[string]struct{})
	linkedRSU := make(map[string]struct{})
	linkedES := make(map[string]struct{})
	inLinks := false

	for i, g := range c {
		switch g.Kind {
		case PlacementKind:
			if inLinks {
				return fmt.Errorf("gene %d: placement gene after link genes: %w", i, ErrMalformedChromosome)
			}
			if _, ok := placed[g.RSUID]; ok {
				return fmt.Errorf("gene %d: RSU %q placed twice: %w", i, g.RSUID, ErrMalformedChromosome)
			}
			placed[g.RSUID] = struct{}{}
		case LinkKind:
			inLinks = true
			if _, ok := placed[g.RSUID]; !ok {
				return fmt.Errorf("gene %d: link to RSU %q which has no placement gene: %w", i, g.RSUID, ErrMalformedChromosome)
			}
			if _, ok := linkedRSU[g.RSUID]; ok {
				return fmt.Errorf("gene %d: RSU %q linked to more than one edge server: %w", i, g.RSUID, ErrMalformedChromosome)
			}
			if _, ok := linkedES[g.ESID]; ok {
				return fmt.Errorf("gene %d: edge server %q linked twice: %w", i, g.ESID, ErrMalformedChromosome)
			}
			linkedRSU[g.RSUID] = struct{}{}
			linkedES[g.ESID] = struct{}{}
		default:
			return fmt.Errorf("gene %d: unknown gene kind %d: %w", i, g.Kind, ErrMalformedChromosome)
		}
	}
	return nil
}

// SameLayout reports whether a and b have the same gene kind and key at every
// position, so that genes can be exchanged position by position.
func SameLayout(a, b Chromosome) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Key() != b[i].Key() {
			return false
		}
	}
	return true
}
