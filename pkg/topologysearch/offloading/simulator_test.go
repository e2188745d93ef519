package offloading_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/offloading"
)

type event struct {
	Kind string
	Tick int
	Task string
	RSU  string
	Time int
}

type recorder struct {
	events []event
}

func (r *recorder) Placed(tick int, task *framework.Task, rsu *framework.RSU, serviceTime int) {
	r.events = append(r.events, event{Kind: "placed", Tick: tick, Task: task.ID, RSU: rsu.ID, Time: serviceTime})
}

func (r *recorder) Migrated(tick int, task *framework.Task, _, to *framework.RSU, migrationTime int) {
	r.events = append(r.events, event{Kind: "migrated", Tick: tick, Task: task.ID, RSU: to.ID, Time: migrationTime})
}

func (r *recorder) Released(tick int, rsu *framework.RSU) {
	r.events = append(r.events, event{Kind: "released", Tick: tick, RSU: rsu.ID})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// twoRSUNetwork is an access point at (0,0) and an edge server RSU at (10,0)
func twoRSUNetwork() framework.Network {
	return framework.Network{
		{ID: "ap", X: 0, Y: 0, DTR: 10},
		{ID: "edge", X: 10, Y: 0, DTR: 10, ES: &framework.ES{ID: "es", VMNumber: 1, VMCapacity: 100}},
	}
}

func TestRunTwoRSUScenario(t *testing.T) {
	// the outcome must not depend on which task is picked first
	for seed := uint64(1); seed <= 10; seed++ {
		network := twoRSUNetwork()
		transfer := framework.NewTask("transfer", 0, 50, framework.DataTransfer, 0, 0)
		compute := framework.NewTask("compute", 500, 20, framework.Computation, 0, 0)
		rec := &recorder{}

		sim := offloading.NewSimulator(rand.New(rand.NewSource(seed)))
		sim.Recorder = rec
		res, err := sim.Run(network, []*framework.Task{transfer, compute})
		if err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}

		if transfer.ComputationHistory != 5 || transfer.MigrationHistory != 0 {
			t.Errorf("seed %d: transfer task = (%d, %d), want (5, 0)",
				seed, transfer.ComputationHistory, transfer.MigrationHistory)
		}
		// ceil((20 / 10) * 10) = 20 ticks to reach the edge RSU
		if compute.ComputationHistory != 5 || compute.MigrationHistory != 20 {
			t.Errorf("seed %d: compute task = (%d, %d), want (5, 20)",
				seed, compute.ComputationHistory, compute.MigrationHistory)
		}
		if diff := cmp.Diff([]string{"ap", "edge"}, compute.RSUHistory); diff != "" {
			t.Errorf("seed %d: compute history mismatch (-want +got):\n%s", seed, diff)
		}
		if res.Placements != 2 || res.Migrations != 1 {
			t.Errorf("seed %d: result = %+v, want 2 placements and 1 migration", seed, res)
		}
		if rec.count("placed") != 2 || rec.count("migrated") != 1 {
			t.Errorf("seed %d: unexpected events %+v", seed, rec.events)
		}
	}
}

func TestRunWaitsForBusyServer(t *testing.T) {
	network := framework.Network{
		{ID: "ap-1", X: 0, Y: 0, DTR: 10},
		{ID: "ap-2", X: 3, Y: 4, DTR: 10},
	}
	tasks := []*framework.Task{
		framework.NewTask("t1", 0, 100, framework.DataTransfer, 0, 0),
		framework.NewTask("t2", 0, 100, framework.DataTransfer, 0, 0),
	}

	sim := offloading.NewSimulator(rand.New(rand.NewSource(7)))
	if _, err := sim.Run(network, tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// one task takes ap-1, the other finds it busy and migrates 5 units
	var migrated, direct *framework.Task
	for _, task := range tasks {
		if task.MigrationHistory > 0 {
			migrated = task
		} else {
			direct = task
		}
	}
	if migrated == nil || direct == nil {
		t.Fatalf("expected exactly one migrated task, got %+v and %+v", tasks[0], tasks[1])
	}
	if migrated.MigrationHistory != 50 {
		t.Errorf("MigrationHistory = %d, want ceil((100/10)*5) = 50", migrated.MigrationHistory)
	}
	if migrated.ComputationHistory != 10 || direct.ComputationHistory != 10 {
		t.Errorf("ComputationHistory = (%d, %d), want 10 for both", migrated.ComputationHistory, direct.ComputationHistory)
	}
}

func TestRunStallsWithoutCompatibleServer(t *testing.T) {
	network := framework.Network{{ID: "ap", X: 0, Y: 0, DTR: 10}}
	tasks := []*framework.Task{framework.NewTask("compute", 100, 10, framework.Computation, 1, 1)}

	sim := offloading.NewSimulator(rand.New(rand.NewSource(1)))
	sim.MaxTicks = 100
	_, err := sim.Run(network, tasks)
	if !errors.Is(err, offloading.ErrSimulationStalled) {
		t.Fatalf("Run() error = %v, want ErrSimulationStalled", err)
	}
	if len(tasks[0].RSUHistory) > len(network) {
		t.Errorf("history %v exceeds network size", tasks[0].RSUHistory)
	}
}

func TestRunTaskAtInfinity(t *testing.T) {
	network := framework.Network{{ID: "ap", X: 0, Y: 0, DTR: 10}}
	tasks := []*framework.Task{framework.NewTask("far", 0, 10, framework.DataTransfer, math.Inf(1), 0)}

	sim := offloading.NewSimulator(rand.New(rand.NewSource(1)))
	sim.MaxTicks = 10
	_, err := sim.Run(network, tasks)
	if !errors.Is(err, offloading.ErrSimulationStalled) {
		t.Errorf("Expected %v, got %v", offloading.ErrSimulationStalled, err)
	}
	if len(tasks[0].RSUHistory) != 0 {
		t.Errorf("Expected empty history, got %v", tasks[0].RSUHistory)
	}
}

func TestRunEmptyInputs(t *testing.T) {
	sim := offloading.NewSimulator(rand.New(rand.NewSource(1)))

	if _, err := sim.Run(nil, nil); err != nil {
		t.Errorf("Run() with no tasks = %v, want nil", err)
	}
	task := framework.NewTask("t", 1, 1, framework.DataTransfer, 0, 0)
	if _, err := sim.Run(nil, []*framework.Task{task}); !errors.Is(err, offloading.ErrEmptyNetwork) {
		t.Errorf("Run() on empty network = %v, want ErrEmptyNetwork", err)
	}
}

func TestHistoryNeverExceedsNetworkSize(t *testing.T) {
	network := framework.Network{
		{ID: "ap-1", X: 0, Y: 0, DTR: 1},
		{ID: "ap-2", X: 1, Y: 0, DTR: 1},
		{ID: "ap-3", X: 2, Y: 0, DTR: 1},
	}
	var tasks []*framework.Task
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		tasks = append(tasks, framework.NewTask(id, 0, 3, framework.DataTransfer, 0, 0))
	}

	rec := &historyRecorder{limit: len(network), t: t}
	sim := offloading.NewSimulator(rand.New(rand.NewSource(3)))
	sim.Recorder = rec
	if _, err := sim.Run(network, tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("task %s not completed", task.ID)
		}
	}
}

type historyRecorder struct {
	limit int
	t     *testing.T
}

func (h *historyRecorder) Placed(int, *framework.Task, *framework.RSU, int) {}

func (h *historyRecorder) Migrated(_ int, task *framework.Task, _, _ *framework.RSU, _ int) {
	if len(task.RSUHistory) > h.limit {
		h.t.Errorf("task %s history %v exceeds %d", task.ID, task.RSUHistory, h.limit)
	}
}

func (h *historyRecorder) Released(int, *framework.RSU) {}

func TestTimes(t *testing.T) {
	testCases := []struct {
		name string
		got  int
		want int
	}{
		{"ComputationExact", offloading.ComputationTime(500, 1, 100), 5},
		{"ComputationRoundsUp", offloading.ComputationTime(501, 2, 100), 3},
		{"DataTransfer", offloading.DataTransferTime(50, 10), 5},
		{"DataTransferRoundsUp", offloading.DataTransferTime(51, 10), 6},
		{"Migration", offloading.MigrationTime(20, 10, 10), 20},
		{"MigrationZeroDistance", offloading.MigrationTime(20, 0, 10), 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %d, want %d", tc.got, tc.want)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	ap := &framework.RSU{ID: "ap"}
	edge := &framework.RSU{ID: "edge", ES: &framework.ES{ID: "es", VMNumber: 1, VMCapacity: 1}}
	compute := &framework.Task{Type: framework.Computation}
	transfer := &framework.Task{Type: framework.DataTransfer}

	if !offloading.Compatible(ap, transfer) || offloading.Compatible(ap, compute) {
		t.Error("access points must accept only data transfer tasks")
	}
	if !offloading.Compatible(edge, compute) || offloading.Compatible(edge, transfer) {
		t.Error("edge server RSUs must accept only computation tasks")
	}
}
