package benchmarks

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// Case is a synthetic scenario. Entities are drawn from the seeded random
// source so every run of a case sees the same registry.
type Case struct {
	Name        string
	RSUs        int
	EdgeServers int
	Tasks       int
	// ComputationShare is the fraction of tasks that need an edge server
	ComputationShare float64
	// Area is the side of the square RSUs and tasks are placed in
	Area float64
	Seed uint64
}

// StandardCases returns the cases run by AddStandardCases
func StandardCases() []Case {
	return []Case{
		{Name: "Small", RSUs: 4, EdgeServers: 2, Tasks: 10, ComputationShare: 0.5, Area: 100, Seed: 1},
		{Name: "Medium", RSUs: 10, EdgeServers: 4, Tasks: 40, ComputationShare: 0.5, Area: 100, Seed: 2},
		{Name: "ComputeHeavy", RSUs: 10, EdgeServers: 6, Tasks: 40, ComputationShare: 0.8, Area: 100, Seed: 3},
		{Name: "Large", RSUs: 25, EdgeServers: 10, Tasks: 100, ComputationShare: 0.5, Area: 100, Seed: 4},
	}
}

// Registry generates the entities of the case. The first EdgeServers RSUs
// host one edge server each in the loaded topology.
func (c Case) Registry() (*framework.Registry, error) {
	if c.EdgeServers > c.RSUs {
		return nil, fmt.Errorf("case %s: %d edge servers for %d RSUs", c.Name, c.EdgeServers, c.RSUs)
	}
	rng := rand.New(rand.NewSource(c.Seed))
	coord := func() float64 {
		return float64(rng.Intn(int(c.Area) + 1))
	}

	ess := make([]*framework.ES, c.EdgeServers)
	for i := range ess {
		ess[i] = &framework.ES{
			ID:         fmt.Sprintf("es-%02d", i),
			VMNumber:   1 + rng.Intn(4),
			VMCapacity: float64(500 * (1 + rng.Intn(8))),
		}
	}

	rsus := make([]*framework.RSU, c.RSUs)
	for i := range rsus {
		rsus[i] = &framework.RSU{
			ID:  fmt.Sprintf("rsu-%02d", i),
			X:   coord(),
			Y:   coord(),
			DTR: float64(10 * (1 + rng.Intn(10))),
		}
		if i < len(ess) {
			rsus[i].ES = ess[i]
		}
	}

	tasks := make([]*framework.Task, c.Tasks)
	for i := range tasks {
		typ := framework.DataTransfer
		length := 0.0
		if rng.Float64() < c.ComputationShare {
			typ = framework.Computation
			length = float64(1000 * (1 + rng.Intn(20)))
		}
		fileSize := float64(5 * (1 + rng.Intn(20)))
		tasks[i] = framework.NewTask(fmt.Sprintf("task-%03d", i), length, fileSize, typ, coord(), coord())
	}

	return framework.NewRegistry(rsus, ess, tasks)
}
