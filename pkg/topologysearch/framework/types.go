package framework

import (
	"fmt"
	"strings"
)

// RSUState is the occupancy state of a roadside unit during a simulation run
type RSUState int

const (
	Idle RSUState = iota
	Busy
)

func (s RSUState) String() string {
	if s == Busy {
		return "BUSY"
	}
	return "IDLE"
}

// TaskType selects which kind of RSU can serve a task
type TaskType int

const (
	Computation TaskType = iota
	DataTransfer
)

func (t TaskType) String() string {
	switch t {
	case Computation:
		return "COMPUTATION"
	case DataTransfer:
		return "DATA_TRANSFER"
	default:
		return fmt.Sprintf("TaskType(%d)", int(t))
	}
}

// ParseTaskType accepts COMPUTATION, DATA_TRANSFER and the "DATA TRANSFER" spelling
func ParseTaskType(s string) (TaskType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMPUTATION":
		return Computation, nil
	case "DATA_TRANSFER", "DATA TRANSFER", "DATA-TRANSFER":
		return DataTransfer, nil
	}
	return 0, fmt.Errorf("unknown task type %q", s)
}

// ES is an edge server: a pool of VMs that can be attached to one RSU
type ES struct {
	ID         string
	VMNumber   int
	VMCapacity float64 // per VM, in MIPS
}

// RSU is a roadside unit. An RSU without an ES is an access point.
type RSU struct {
	ID  string
	X   float64
	Y   float64
	DTR float64 // data transfer rate, in Mb/s

	ES *ES

	State   RSUState
	EndTime int // tick at which a busy RSU becomes idle
}

// IsAccessPoint reports whether no edge server is attached
func (r *RSU) IsAccessPoint() bool {
	return r.ES == nil
}

// Reset puts the RSU back in its pre-simulation state
func (r *RSU) Reset() {
	r.State = Idle
	r.EndTime = 0
}

// Task is an offloadable unit of work
type Task struct {
	ID       string
	Length   float64 // in MI
	FileSize float64 // in MB
	Type     TaskType

	// OriginX and OriginY hold the loaded position; X and Y move during simulation
	OriginX float64
	OriginY float64
	X       float64
	Y       float64

	Completed          bool
	RSUHistory         []string
	MigrationTime      int
	ComputationHistory int
	MigrationHistory   int
}

// NewTask creates a task positioned at its origin
func NewTask(id string, length, fileSize float64, typ TaskType, x, y float64) *Task {
	return &Task{
		ID:       id,
		Length:   length,
		FileSize: fileSize,
		Type:     typ,
		OriginX:  x,
		OriginY:  y,
		X:        x,
		Y:        y,
	}
}

// Reset clears every field mutated by a simulation run
func (t *Task) Reset() {
	t.X = t.OriginX
	t.Y = t.OriginY
	t.Completed = false
	t.RSUHistory = t.RSUHistory[:0]
	t.MigrationTime = 0
	t.ComputationHistory = 0
	t.MigrationHistory = 0
}

// Visited reports whether the RSU with the given ID is in the task history
func (t *Task) Visited(rsuID string) bool {
	for _, id := range t.RSUHistory {
		if id == rsuID {
			return true
		}
	}
	return false
}

// Network is the ordered set of RSUs of one candidate topology
type Network []*RSU

// AccessPoints counts RSUs without an edge server
func (n Network) AccessPoints() int {
	count := 0
	for _, rsu := range n {
		if rsu.IsAccessPoint() {
			count++
		}
	}
	return count
}

// EdgeServers counts RSUs hosting an edge server
func (n Network) EdgeServers() int {
	return len(n) - n.AccessPoints()
}

// Reset resets the simulation state of every RSU
func (n Network) Reset() {
	for _, rsu := range n {
		rsu.Reset()
	}
}

// ObjectiveSpacePoint is the value of a solution in the objective space.
// For a topology it is [max computation time, max migration time].
type ObjectiveSpacePoint []float64

// Constraint reports whether a network is a feasible candidate
type Constraint func(network Network) bool

// ObjectiveFunc reduces the tasks of a finished simulation run to one objective value
type ObjectiveFunc func(tasks []*Task) float64

// Area is the rectangle [0, Width] x [0, Height] that RSUs are placed in
type Area struct {
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the area, boundary included
func (a Area) Contains(x, y float64) bool {
	return x >= 0 && x <= a.Width && y >= 0 && y <= a.Height
}
