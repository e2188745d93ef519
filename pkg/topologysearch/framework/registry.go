package framework

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrDuplicateID is returned when two entities of the same kind share an ID
	ErrDuplicateID = errors.New("duplicate entity ID")
	// ErrInvalidEntity is returned for entities whose rates or capacities cannot be simulated
	ErrInvalidEntity = errors.New("invalid entity")
)

// Registry owns the RSUs, edge servers and tasks of one scenario.
// Codec and simulator calls resolve IDs against it.
type Registry struct {
	rsus  []*RSU
	ess   []*ES
	tasks []*Task

	rsuByID map[string]*RSU
	esByID  map[string]*ES
}

// NewRegistry validates the entities and indexes them by ID
func NewRegistry(rsus []*RSU, ess []*ES, tasks []*Task) (*Registry, error) {
	r := &Registry{
		rsus:    rsus,
		ess:     ess,
		tasks:   tasks,
		rsuByID: make(map[string]*RSU, len(rsus)),
		esByID:  make(map[string]*ES, len(ess)),
	}

	for _, es := range ess {
		if _, ok := r.esByID[es.ID]; ok {
			return nil, fmt.Errorf("edge server %q: %w", es.ID, ErrDuplicateID)
		}
		if es.VMNumber <= 0 || es.VMCapacity <= 0 {
			return nil, fmt.Errorf("edge server %q needs positive VM number and capacity: %w", es.ID, ErrInvalidEntity)
		}
		r.esByID[es.ID] = es
	}

	for _, rsu := range rsus {
		if _, ok := r.rsuByID[rsu.ID]; ok {
			return nil, fmt.Errorf("RSU %q: %w", rsu.ID, ErrDuplicateID)
		}
		if rsu.DTR <= 0 {
			return nil, fmt.Errorf("RSU %q needs a positive data transfer rate: %w", rsu.ID, ErrInvalidEntity)
		}
		if !finite(rsu.X, rsu.Y) {
			return nil, fmt.Errorf("RSU %q has non-finite coordinates (%g, %g): %w", rsu.ID, rsu.X, rsu.Y, ErrInvalidEntity)
		}
		if rsu.ES != nil {
			if _, ok := r.esByID[rsu.ES.ID]; !ok {
				return nil, fmt.Errorf("RSU %q references edge server %q outside the registry: %w", rsu.ID, rsu.ES.ID, ErrInvalidEntity)
			}
		}
		r.rsuByID[rsu.ID] = rsu
	}

	taskIDs := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if _, ok := taskIDs[task.ID]; ok {
			return nil, fmt.Errorf("task %q: %w", task.ID, ErrDuplicateID)
		}
		if !finite(task.OriginX, task.OriginY, task.X, task.Y) {
			return nil, fmt.Errorf("task %q has non-finite coordinates (%g, %g): %w", task.ID, task.X, task.Y, ErrInvalidEntity)
		}
		taskIDs[task.ID] = struct{}{}
	}

	return r, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// RSU looks up an RSU by ID
func (r *Registry) RSU(id string) (*RSU, bool) {
	rsu, ok := r.rsuByID[id]
	return rsu, ok
}

// ES looks up an edge server by ID
func (r *Registry) ES(id string) (*ES, bool) {
	es, ok := r.esByID[id]
	return es, ok
}

func (r *Registry) RSUs() []*RSU {
	return r.rsus
}

func (r *Registry) EdgeServers() []*ES {
	return r.ess
}

func (r *Registry) Tasks() []*Task {
	return r.tasks
}

// RSUIDs returns all RSU IDs in ascending order
func (r *Registry) RSUIDs() []string {
	ids := make([]string, 0, len(r.rsus))
	for _, rsu := range r.rsus {
		ids = append(ids, rsu.ID)
	}
	sort.Strings(ids)
	return ids
}

// Network returns the topology as loaded: every RSU with its input position and ES link
func (r *Registry) Network() Network {
	return Network(r.rsus)
}

// ResetTasks clears the simulation state of every task
func (r *Registry) ResetTasks() {
	for _, task := range r.tasks {
		task.Reset()
	}
}

// Clone deep-copies RSUs and tasks. Edge servers are never mutated and stay shared.
func (r *Registry) Clone() *Registry {
	rsus := make([]*RSU, len(r.rsus))
	for i, rsu := range r.rsus {
		c := *rsu
		rsus[i] = &c
	}
	tasks := make([]*Task, len(r.tasks))
	for i, task := range r.tasks {
		c := *task
		c.RSUHistory = append([]string(nil), task.RSUHistory...)
		tasks[i] = &c
	}

	clone := &Registry{
		rsus:    rsus,
		ess:     r.ess,
		tasks:   tasks,
		rsuByID: make(map[string]*RSU, len(rsus)),
		esByID:  r.esByID,
	}
	for _, rsu := range rsus {
		clone.rsuByID[rsu.ID] = rsu
	}
	return clone
}
