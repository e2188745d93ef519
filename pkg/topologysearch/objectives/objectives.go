package objectives

import (
	"gonum.org/v1/gonum/floats"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// MaxComputationTime is the worst service time of any task in the last run
func MaxComputationTime(tasks []*framework.Task) float64 {
	return reduceMax(tasks, func(t *framework.Task) int { return t.ComputationHistory })
}

// MaxMigrationTime is the worst accumulated migration time of any task in the last run
func MaxMigrationTime(tasks []*framework.Task) float64 {
	return reduceMax(tasks, func(t *framework.Task) int { return t.MigrationHistory })
}

// Default returns the two minimized objectives in objective space order
func Default() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{MaxComputationTime, MaxMigrationTime}
}

func reduceMax(tasks []*framework.Task, field func(*framework.Task) int) float64 {
	if len(tasks) == 0 {
		return 0
	}
	values := make([]float64, len(tasks))
	for i, task := range tasks {
		values[i] = float64(field(task))
	}
	return floats.Max(values)
}
