// Package scenario reads and writes the RSU, edge server and task records a
// search runs on. Files are YAML or JSON with the layout
//
//	rsus:        [{id, x, y, dtr, es}]
//	edgeServers: [{id, vmNumber, vmCapacity}]
//	tasks:       [{id, length, fileSize, type, x, y}]
//	search:      optional SearchArgs
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// ErrInvalidScenario is returned for records that cannot form a registry
var ErrInvalidScenario = errors.New("invalid scenario")

type RSURecord struct {
	ID  string  `json:"id"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	DTR float64 `json:"dtr"`
	// ES is the ID of the attached edge server, empty for an access point
	ES string `json:"es,omitempty"`
}

type ESRecord struct {
	ID         string  `json:"id"`
	VMNumber   int     `json:"vmNumber"`
	VMCapacity float64 `json:"vmCapacity"`
}

type TaskRecord struct {
	ID       string  `json:"id"`
	Length   float64 `json:"length"`
	FileSize float64 `json:"fileSize"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// File is the on-disk form of a scenario
type File struct {
	RSUs        []RSURecord          `json:"rsus"`
	EdgeServers []ESRecord           `json:"edgeServers"`
	Tasks       []TaskRecord         `json:"tasks"`
	Search      *v1alpha1.SearchArgs `json:"search,omitempty"`
}

// Load reads a scenario file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML or JSON, rejecting unknown fields
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.UnmarshalStrict(data, f); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return f, nil
}

// Registry builds the entity registry described by the file
func (f *File) Registry() (*framework.Registry, error) {
	ess := make([]*framework.ES, len(f.EdgeServers))
	byID := make(map[string]*framework.ES, len(f.EdgeServers))
	for i, rec := range f.EdgeServers {
		ess[i] = &framework.ES{ID: rec.ID, VMNumber: rec.VMNumber, VMCapacity: rec.VMCapacity}
		byID[rec.ID] = ess[i]
	}

	rsus := make([]*framework.RSU, len(f.RSUs))
	for i, rec := range f.RSUs {
		rsus[i] = &framework.RSU{ID: rec.ID, X: rec.X, Y: rec.Y, DTR: rec.DTR}
		if rec.ES == "" {
			continue
		}
		es, ok := byID[rec.ES]
		if !ok {
			return nil, fmt.Errorf("RSU %q references unknown edge server %q: %w", rec.ID, rec.ES, ErrInvalidScenario)
		}
		rsus[i].ES = es
	}

	tasks := make([]*framework.Task, len(f.Tasks))
	for i, rec := range f.Tasks {
		typ, err := framework.ParseTaskType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("task %q: %v: %w", rec.ID, err, ErrInvalidScenario)
		}
		if rec.Length < 0 || rec.FileSize < 0 {
			return nil, fmt.Errorf("task %q has a negative length or file size: %w", rec.ID, ErrInvalidScenario)
		}
		tasks[i] = framework.NewTask(rec.ID, rec.Length, rec.FileSize, typ, rec.X, rec.Y)
	}

	return framework.NewRegistry(rsus, ess, tasks)
}

// FromRegistry captures the loaded topology and task origins of a registry
func FromRegistry(registry *framework.Registry) *File {
	f := &File{}
	for _, es := range registry.EdgeServers() {
		f.EdgeServers = append(f.EdgeServers, ESRecord{ID: es.ID, VMNumber: es.VMNumber, VMCapacity: es.VMCapacity})
	}
	for _, rsu := range registry.RSUs() {
		rec := RSURecord{ID: rsu.ID, X: rsu.X, Y: rsu.Y, DTR: rsu.DTR}
		if rsu.ES != nil {
			rec.ES = rsu.ES.ID
		}
		f.RSUs = append(f.RSUs, rec)
	}
	for _, task := range registry.Tasks() {
		f.Tasks = append(f.Tasks, TaskRecord{
			ID:       task.ID,
			Length:   task.Length,
			FileSize: task.FileSize,
			Type:     task.Type.String(),
			X:        task.OriginX,
			Y:        task.OriginY,
		})
	}
	sort.Slice(f.RSUs, func(i, j int) bool { return f.RSUs[i].ID < f.RSUs[j].ID })
	return f
}

// Save writes the file as YAML
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
