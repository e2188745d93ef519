// Package offloading replays task offloading over one candidate network as a
// discrete-event loop on integer ticks.
//
// Every tick at most one eligible task (not completed, not migrating) is picked
// uniformly at random. A task without history snaps to its nearest RSU; a task
// with history retries its last RSU. If that RSU is idle and compatible the task
// completes there and the RSU stays busy for the service time. Otherwise the
// task migrates to its nearest unvisited RSU. At the end of the tick busy RSUs
// whose end time is reached are released, migrations count down, and tasks that
// visited every RSU get their history cleared so they can retry.
package offloading

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// DefaultMaxTicks bounds a run when the caller does not set a limit
const DefaultMaxTicks = 1_000_000

var (
	// ErrSimulationStalled is returned when tasks are still pending after MaxTicks
	ErrSimulationStalled = errors.New("offloading simulation did not complete")
	// ErrEmptyNetwork is returned when tasks have to be offloaded on a network without RSUs
	ErrEmptyNetwork = errors.New("network has no RSU")
)

// EventRecorder receives the state transitions of a run
type EventRecorder interface {
	Placed(tick int, task *framework.Task, rsu *framework.RSU, serviceTime int)
	Migrated(tick int, task *framework.Task, from, to *framework.RSU, migrationTime int)
	Released(tick int, rsu *framework.RSU)
}

// Result summarizes a run
type Result struct {
	Ticks      int
	Placements int
	Migrations int
	// HistoryResets counts how often a task exhausted the network and started over
	HistoryResets int
}

// Simulator runs offloading with an explicitly threaded random source
type Simulator struct {
	rng *rand.Rand

	// MaxTicks bounds the loop. Zero means unbounded.
	MaxTicks int
	Recorder EventRecorder
}

// NewSimulator creates a simulator bounded by DefaultMaxTicks
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{
		rng:      rng,
		MaxTicks: DefaultMaxTicks,
	}
}

// Run offloads every task on the network and returns once all of them are
// completed. Tasks and RSUs are mutated in place; callers reset them first.
func (s *Simulator) Run(network framework.Network, tasks []*framework.Task) (Result, error) {
	var res Result
	if len(tasks) == 0 {
		return res, nil
	}
	if len(network) == 0 {
		return res, ErrEmptyNetwork
	}

	eligible := make([]*framework.Task, 0, len(tasks))
	tick := 0
	for !allCompleted(tasks) {
		if s.MaxTicks > 0 && tick >= s.MaxTicks {
			return res, fmt.Errorf("%d of %d tasks pending after %d ticks: %w",
				pending(tasks), len(tasks), tick, ErrSimulationStalled)
		}

		eligible = eligible[:0]
		for _, task := range tasks {
			if !task.Completed && task.MigrationTime == 0 {
				eligible = append(eligible, task)
			}
		}
		if len(eligible) > 0 {
			task := eligible[s.rng.Intn(len(eligible))]
			s.step(tick, network, task, &res)
		}

		for _, rsu := range network {
			if rsu.State == framework.Busy && rsu.EndTime == tick {
				rsu.State = framework.Idle
				rsu.EndTime = 0
				if s.Recorder != nil {
					s.Recorder.Released(tick, rsu)
				}
			}
		}

		for _, task := range tasks {
			if task.MigrationTime > 0 {
				task.MigrationTime--
			}
		}

		for _, task := range tasks {
			if len(task.RSUHistory) >= len(network) {
				task.RSUHistory = task.RSUHistory[:0]
				res.HistoryResets++
			}
		}

		tick++
	}

	res.Ticks = tick
	return res, nil
}

// step places or migrates one task
func (s *Simulator) step(tick int, network framework.Network, task *framework.Task, res *Result) {
	var target *framework.RSU
	if len(task.RSUHistory) == 0 {
		target = ClosestRSU(network, task)
		if target == nil {
			// no RSU has a finite distance to the task
			return
		}
		task.RSUHistory = append(task.RSUHistory, target.ID)
		task.X, task.Y = target.X, target.Y
	} else {
		target = lookup(network, task.RSUHistory[len(task.RSUHistory)-1])
	}

	if target != nil && target.State == framework.Idle && Compatible(target, task) {
		serviceTime := ServiceTime(target, task)
		target.State = framework.Busy
		target.EndTime = tick + serviceTime
		task.Completed = true
		task.ComputationHistory = serviceTime
		res.Placements++
		if s.Recorder != nil {
			s.Recorder.Placed(tick, task, target, serviceTime)
		}
		return
	}

	next := ClosestRSU(network, task)
	if next == nil {
		// nowhere left to go this tick; start over from the current position
		task.RSUHistory = task.RSUHistory[:0]
		res.HistoryResets++
		return
	}
	task.RSUHistory = append(task.RSUHistory, next.ID)

	migrationTime := MigrationTime(task.FileSize, Distance(task, next), next.DTR)
	task.MigrationTime = migrationTime
	task.MigrationHistory += migrationTime
	task.X, task.Y = next.X, next.Y
	res.Migrations++
	if s.Recorder != nil {
		s.Recorder.Migrated(tick, task, target, next, migrationTime)
	}
}

func lookup(network framework.Network, id string) *framework.RSU {
	for _, rsu := range network {
		if rsu.ID == id {
			return rsu
		}
	}
	return nil
}

func allCompleted(tasks []*framework.Task) bool {
	for _, task := range tasks {
		if !task.Completed {
			return false
		}
	}
	return true
}

func pending(tasks []*framework.Task) int {
	count := 0
	for _, task := range tasks {
		if !task.Completed {
			count++
		}
	}
	return count
}
